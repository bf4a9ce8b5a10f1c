package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/domain"
	"parley/internal/store"
)

func TestFileStore_Directory_RoundTrip(t *testing.T) {
	s := store.NewFileStore(t.TempDir())

	_, ok, err := s.LoadSessions("alice")
	require.NoError(t, err)
	assert.False(t, ok, "missing owner must read as absent")

	sessions := []domain.Session{
		{ID: 7, Counterparty: "bob"},
		{ID: 9, Counterparty: "carol"},
	}
	require.NoError(t, s.SaveSessions("alice", sessions))

	got, ok, err := s.LoadSessions("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sessions, got)
}

func TestFileStore_Directory_EmptyListIsNotAbsent(t *testing.T) {
	s := store.NewFileStore(t.TempDir())

	require.NoError(t, s.SaveSessions("alice", nil))

	got, ok, err := s.LoadSessions("alice")
	require.NoError(t, err)
	assert.True(t, ok, "an emptied entry is still an entry")
	assert.Empty(t, got)
}

func TestFileStore_MessageLogs(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	const id = domain.SessionID(42)

	ok, err := s.HasLog(id)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveMessages(id, nil))

	ok, err = s.HasLog(id)
	require.NoError(t, err)
	assert.True(t, ok, "an empty log still occupies its id")

	msgs := []domain.Message{
		{Sender: "alice", Receiver: "bob", Text: "hi", SentUTC: 1700000000},
	}
	require.NoError(t, s.SaveMessages(id, msgs))

	got, ok, err := s.LoadMessages(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, msgs, got)

	require.NoError(t, s.RemoveLog(id))
	ok, err = s.HasLog(id)
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent log is not an error.
	require.NoError(t, s.RemoveLog(id))
}

func TestFileStore_Notifications_RoundTrip(t *testing.T) {
	s := store.NewFileStore(t.TempDir())

	notes := []domain.Notification{
		{Sender: "alice", SessionID: 42, SentUTC: 1700000000},
		{Sender: "alice", SessionID: 42, SentUTC: 1700000001},
	}
	require.NoError(t, s.SaveNotifications("bob", notes))

	got, ok, err := s.LoadNotifications("bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, notes, got)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := store.NewFileStore(dir)
	require.NoError(t, first.SaveSessions("alice", []domain.Session{{ID: 3, Counterparty: "bob"}}))

	second := store.NewFileStore(dir)
	got, ok, err := second.LoadSessions("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 1)
	assert.Equal(t, domain.SessionID(3), got[0].ID)
}

func TestSealedFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := store.NewSealedFileStore(dir, "hunter2")
	require.NoError(t, s.SaveSessions("alice", []domain.Session{{ID: 5, Counterparty: "bob"}}))

	reopened := store.NewSealedFileStore(dir, "hunter2")
	got, ok, err := reopened.LoadSessions("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Identity("bob"), got[0].Counterparty)
}

func TestSealedFileStore_WrongPassphraseFails(t *testing.T) {
	dir := t.TempDir()

	s := store.NewSealedFileStore(dir, "correct")
	require.NoError(t, s.SaveSessions("alice", []domain.Session{{ID: 5, Counterparty: "bob"}}))

	wrong := store.NewSealedFileStore(dir, "wrong")
	_, _, err := wrong.LoadSessions("alice")
	require.Error(t, err)
}
