// Package session manages the session directory.
//
// It establishes pairwise sessions, enforces the per-caller session cap and
// counterparty uniqueness, and on removal applies the cascade rule that
// reclaims the shared message log and pending notifications once neither
// party lists the session.
package session
