package interfaces

import domaintypes "parley/internal/domain/types"

// DirectoryStore persists each caller's ordered session list. A missing
// owner (ok=false) is distinct from an owner holding an empty list; the
// cascade rule in the session manager depends on that distinction.
type DirectoryStore interface {
	LoadSessions(owner domaintypes.Identity) (sessions []domaintypes.Session, ok bool, err error)
	SaveSessions(owner domaintypes.Identity, sessions []domaintypes.Session) error
}

// MessageLogStore persists the per-session message logs, keyed by session id.
type MessageLogStore interface {
	LoadMessages(id domaintypes.SessionID) (messages []domaintypes.Message, ok bool, err error)
	SaveMessages(id domaintypes.SessionID, messages []domaintypes.Message) error
	RemoveLog(id domaintypes.SessionID) error

	// HasLog reports whether a log exists at id without loading it; the
	// id generator uses it to avoid handing out an id already in use.
	HasLog(id domaintypes.SessionID) (bool, error)
}

// NotificationStore persists each recipient's ordered unread-message queue.
type NotificationStore interface {
	LoadNotifications(owner domaintypes.Identity) (notes []domaintypes.Notification, ok bool, err error)
	SaveNotifications(owner domaintypes.Identity, notes []domaintypes.Notification) error
}
