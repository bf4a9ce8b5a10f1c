package interfaces

import domaintypes "parley/internal/domain/types"

// SessionManager creates and removes directory entries, cascading to the
// message log and both notification queues when neither side keeps a session.
type SessionManager interface {
	Create(caller, counterparty domaintypes.Identity) error
	Remove(caller, counterparty domaintypes.Identity) error
	RemoveAll(caller domaintypes.Identity) error
}

// SessionResolver maps a counterparty to the session id joining the two
// parties, by linear scan of the caller's directory entry.
type SessionResolver interface {
	Resolve(caller, counterparty domaintypes.Identity) (domaintypes.SessionID, error)
}

// MessageEngine appends to a session's log and enqueues an unread marker for
// the receiver.
type MessageEngine interface {
	Send(caller, receiver domaintypes.Identity, text string) error
}

// QueryService performs the read-side lookups across all three collections.
// Messages additionally clears the caller's notifications for the viewed
// session; Notifications is a pure read.
type QueryService interface {
	Messages(caller, counterparty domaintypes.Identity) ([]domaintypes.Message, error)
	Notifications(caller domaintypes.Identity) ([]domaintypes.Notification, error)
	SessionID(caller, counterparty domaintypes.Identity) (domaintypes.SessionID, error)
	Sessions(caller domaintypes.Identity) ([]domaintypes.Session, error)
	TotalSessions(caller domaintypes.Identity) (int, error)
	TotalSessionMessages(caller, counterparty domaintypes.Identity) (int, error)
	Limits() domaintypes.Limits
}
