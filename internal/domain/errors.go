package domain

import "errors"

// ErrorKind names one failure in the closed set the store can return.
type ErrorKind string

const (
	// KindNoManager is reserved in the taxonomy; no current operation
	// returns it.
	KindNoManager ErrorKind = "NoManager"
	// KindNoSession: the caller has no session directory entry at all.
	KindNoSession ErrorKind = "NoSession"
	// KindNotFound: a narrower lookup failed, such as no session with that
	// counterparty or no message log at that id.
	KindNotFound ErrorKind = "NotFound"
	// KindDuplicateAttempt: a session with that counterparty already exists.
	KindDuplicateAttempt ErrorKind = "DuplicateAttempt"
	// KindMaxSessionsReached: the caller's directory entry is at capacity.
	KindMaxSessionsReached ErrorKind = "MaxSessionsReached"
	// KindMaxMessagesReached: the session's message log is at capacity.
	KindMaxMessagesReached ErrorKind = "MaxMessagesReached"
)

// Error is a typed store failure: a kind from the closed set plus a
// human-readable detail. Two Errors match under errors.Is when their kinds
// match, so callers compare against the exported sentinels.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

// Is matches any Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNoManager          = &Error{Kind: KindNoManager}
	ErrNoSession          = &Error{Kind: KindNoSession}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrDuplicateAttempt   = &Error{Kind: KindDuplicateAttempt}
	ErrMaxSessionsReached = &Error{Kind: KindMaxSessionsReached}
	ErrMaxMessagesReached = &Error{Kind: KindMaxMessagesReached}
)

// NoSession builds a NoSession error with detail.
func NoSession(detail string) *Error {
	return &Error{Kind: KindNoSession, Detail: detail}
}

// NotFound builds a NotFound error with detail.
func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// DuplicateAttempt builds a DuplicateAttempt error with detail.
func DuplicateAttempt(detail string) *Error {
	return &Error{Kind: KindDuplicateAttempt, Detail: detail}
}

// MaxSessionsReached builds a MaxSessionsReached error with detail.
func MaxSessionsReached(detail string) *Error {
	return &Error{Kind: KindMaxSessionsReached, Detail: detail}
}

// MaxMessagesReached builds a MaxMessagesReached error with detail.
func MaxMessagesReached(detail string) *Error {
	return &Error{Kind: KindMaxMessagesReached, Detail: detail}
}

// KindOf extracts the kind of a typed store failure, or "" when err is not
// one. Transport layers use it to map failures onto their own status codes.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
