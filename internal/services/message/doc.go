// Package message appends to session message logs and enqueues
// unread-message notifications for recipients.
package message
