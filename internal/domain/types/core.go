package types

// Identity is the opaque token naming an authenticated caller. The store
// assumes nothing about its structure beyond equality.
type Identity string

// String returns the string form of the identity.
func (i Identity) String() string { return string(i) }

// SessionID joins a directory record to its message log. Generated ids are
// 53-bit random values; zero never names a real session.
type SessionID uint64

// IsZero reports whether the id is the unassigned value.
func (id SessionID) IsZero() bool { return id == 0 }

// Default capacity limits.
const (
	DefaultMaxSessions = 20
	DefaultMaxMessages = 200
)

// Limits carries the configured capacity caps.
type Limits struct {
	MaxSessions int `json:"max_sessions"`
	MaxMessages int `json:"max_messages"`
}

// OrDefaults fills zero fields with the default caps.
func (l Limits) OrDefaults() Limits {
	if l.MaxSessions <= 0 {
		l.MaxSessions = DefaultMaxSessions
	}
	if l.MaxMessages <= 0 {
		l.MaxMessages = DefaultMaxMessages
	}
	return l
}
