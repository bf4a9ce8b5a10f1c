package session

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"parley/internal/domain"
)

// idMask keeps generated ids within 53 bits so they survive transports that
// round-trip numbers through IEEE-754 doubles.
const idMask = 1<<53 - 1

// Generator draws random session ids that are nonzero and not already keys in
// the message log store. Collisions are rare at 53 bits but the re-draw loop
// is required for correctness, not as an optimisation.
type Generator struct {
	rand io.Reader
	logs domain.MessageLogStore
}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator(logs domain.MessageLogStore) *Generator {
	return &Generator{rand: rand.Reader, logs: logs}
}

// Next returns a fresh session id.
func (g *Generator) Next() (domain.SessionID, error) {
	var buf [8]byte
	for {
		if _, err := io.ReadFull(g.rand, buf[:]); err != nil {
			return 0, fmt.Errorf("draw session id: %w", err)
		}
		id := domain.SessionID(binary.BigEndian.Uint64(buf[:]) & idMask)
		if id.IsZero() {
			// Zero is reserved as the unassigned value.
			continue
		}
		taken, err := g.logs.HasLog(id)
		if err != nil {
			return 0, err
		}
		if !taken {
			return id, nil
		}
	}
}
