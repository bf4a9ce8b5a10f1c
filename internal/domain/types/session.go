package types

// Session is one side of a pairwise conversation. A conversation between A
// and B is two independent Session records, one in each party's directory,
// sharing the same id while both sides keep it. Within one directory entry
// counterparties are unique.
type Session struct {
	ID           SessionID `json:"id"`
	Counterparty Identity  `json:"counterparty"`
}
