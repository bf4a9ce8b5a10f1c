// Package query serves the read side of the store: message history,
// notification queues, session lookups and totals.
package query
