package types

// Message is one immutable entry in a session's log. Log order is insertion
// order and is the only ordering guarantee.
type Message struct {
	Sender   Identity `json:"sender"`
	Receiver Identity `json:"receiver"`
	Text     string   `json:"text"`
	SentUTC  int64    `json:"sent_utc"`
}
