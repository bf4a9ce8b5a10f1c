package message_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/domain"
	"parley/internal/services/message"
	"parley/internal/services/session"
	"parley/internal/store"
)

type fixture struct {
	sessions *session.Service
	messages *message.Service
	fs       *store.FileStore
}

func newFixture(t *testing.T, limits domain.Limits) fixture {
	t.Helper()
	fs := store.NewFileStore(t.TempDir())
	sessions := session.New(fs, fs, fs, limits)
	return fixture{
		sessions: sessions,
		messages: message.New(sessions, fs, fs, limits),
		fs:       fs,
	}
}

func TestSend_AppendsAndNotifies(t *testing.T) {
	f := newFixture(t, domain.Limits{})
	require.NoError(t, f.sessions.Create("alice", "bob"))
	id, err := f.sessions.Resolve("alice", "bob")
	require.NoError(t, err)

	require.NoError(t, f.messages.Send("alice", "bob", "hi"))

	msgs, ok, err := f.fs.LoadMessages(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.Identity("alice"), msgs[0].Sender)
	assert.Equal(t, domain.Identity("bob"), msgs[0].Receiver)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.NotZero(t, msgs[0].SentUTC)

	notes, ok, err := f.fs.LoadNotifications("bob")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.Identity("alice"), notes[0].Sender)
	assert.Equal(t, id, notes[0].SessionID)
	assert.Equal(t, msgs[0].SentUTC, notes[0].SentUTC)
}

func TestSend_NotificationsAccumulate(t *testing.T) {
	f := newFixture(t, domain.Limits{})
	require.NoError(t, f.sessions.Create("alice", "bob"))

	require.NoError(t, f.messages.Send("alice", "bob", "one"))
	require.NoError(t, f.messages.Send("alice", "bob", "two"))

	notes, _, err := f.fs.LoadNotifications("bob")
	require.NoError(t, err)
	assert.Len(t, notes, 2, "one marker per send until the recipient views the session")
}

func TestSend_MessageCapBoundary(t *testing.T) {
	const limit = 3
	f := newFixture(t, domain.Limits{MaxMessages: limit})
	require.NoError(t, f.sessions.Create("alice", "bob"))

	// The append is refused only once the log already exceeds the cap, so
	// cap+1 sends go through.
	for i := 0; i < limit+1; i++ {
		require.NoError(t, f.messages.Send("alice", "bob", fmt.Sprintf("m%d", i)))
	}

	err := f.messages.Send("alice", "bob", "overflow")
	assert.True(t, errors.Is(err, domain.ErrMaxMessagesReached))

	id, err := f.sessions.Resolve("alice", "bob")
	require.NoError(t, err)
	msgs, _, err := f.fs.LoadMessages(id)
	require.NoError(t, err)
	assert.Len(t, msgs, limit+1)
}

func TestSend_BothDirectionsShareTheLog(t *testing.T) {
	f := newFixture(t, domain.Limits{})
	require.NoError(t, f.sessions.Create("alice", "bob"))

	require.NoError(t, f.messages.Send("alice", "bob", "ping"))
	require.NoError(t, f.messages.Send("bob", "alice", "pong"))

	id, err := f.sessions.Resolve("alice", "bob")
	require.NoError(t, err)
	msgs, _, err := f.fs.LoadMessages(id)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "ping", msgs[0].Text)
	assert.Equal(t, "pong", msgs[1].Text)
}

func TestSend_NoDirectoryEntry(t *testing.T) {
	f := newFixture(t, domain.Limits{})

	err := f.messages.Send("nobody", "bob", "hi")
	assert.True(t, errors.Is(err, domain.ErrNoSession))
}

func TestSend_NoSessionWithReceiver(t *testing.T) {
	f := newFixture(t, domain.Limits{})
	require.NoError(t, f.sessions.Create("alice", "bob"))

	err := f.messages.Send("alice", "stranger", "hi")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// brokenNotes passes reads through to the real store but fails every
// enqueue, recording how long the session log was at that moment.
type brokenNotes struct {
	domain.NotificationStore
	logs         domain.MessageLogStore
	id           domain.SessionID
	logLenAtSave int
	err          error
}

func (b *brokenNotes) SaveNotifications(owner domain.Identity, notes []domain.Notification) error {
	msgs, _, _ := b.logs.LoadMessages(b.id)
	b.logLenAtSave = len(msgs)
	return b.err
}

func TestSend_LogCommitsBeforeNotification(t *testing.T) {
	fs := store.NewFileStore(t.TempDir())
	sessions := session.New(fs, fs, fs, domain.Limits{})
	require.NoError(t, sessions.Create("alice", "bob"))
	id, err := sessions.Resolve("alice", "bob")
	require.NoError(t, err)

	boom := errors.New("notification store down")
	notes := &brokenNotes{NotificationStore: fs, logs: fs, id: id, err: boom}
	messages := message.New(sessions, fs, notes, domain.Limits{})

	err = messages.Send("alice", "bob", "hi")
	require.ErrorIs(t, err, boom, "the enqueue failure surfaces to the caller")

	// The append committed before the enqueue ran, and stays committed.
	assert.Equal(t, 1, notes.logLenAtSave, "the log already held the message when the enqueue started")
	msgs, ok, err := fs.LoadMessages(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, msgs, 1, "a failed enqueue never rolls back the delivered message")
	assert.Equal(t, "hi", msgs[0].Text)

	// Delivered but unnotified: bob's queue never saw the marker.
	_, ok, err = fs.LoadNotifications("bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSend_MissingLogIsRefused(t *testing.T) {
	f := newFixture(t, domain.Limits{})
	require.NoError(t, f.sessions.Create("alice", "bob"))
	id, err := f.sessions.Resolve("alice", "bob")
	require.NoError(t, err)

	// Simulate the collections disagreeing.
	require.NoError(t, f.fs.RemoveLog(id))

	err = f.messages.Send("alice", "bob", "hi")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
