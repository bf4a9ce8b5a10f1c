package session

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/domain"
	"parley/internal/store"
)

func TestGenerator_StaysWithin53Bits(t *testing.T) {
	g := NewGenerator(store.NewFileStore(t.TempDir()))

	for i := 0; i < 64; i++ {
		id, err := g.Next()
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.LessOrEqual(t, uint64(id), uint64(idMask))
	}
}

func TestGenerator_RedrawsOnCollision(t *testing.T) {
	fs := store.NewFileStore(t.TempDir())
	require.NoError(t, fs.SaveMessages(42, nil))

	g := &Generator{
		rand: bytes.NewReader([]byte{
			0, 0, 0, 0, 0, 0, 0, 42, // taken
			0, 0, 0, 0, 0, 0, 0, 7, // free
		}),
		logs: fs,
	}

	id, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID(7), id)
}

func TestGenerator_SkipsZero(t *testing.T) {
	g := &Generator{
		rand: bytes.NewReader([]byte{
			0, 0, 0, 0, 0, 0, 0, 0, // zero is reserved
			0, 0, 0, 0, 0, 0, 0, 1,
		}),
		logs: store.NewFileStore(t.TempDir()),
	}

	id, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID(1), id)
}
