package types

// Notification marks at least one unread message from Sender in the session
// named by SessionID. One record is enqueued per send; duplicates for the
// same session accumulate until the recipient views it, at which point every
// record carrying that session id is cleared together.
type Notification struct {
	Sender    Identity  `json:"sender"`
	SessionID SessionID `json:"session_id"`
	SentUTC   int64     `json:"sent_utc"`
}
