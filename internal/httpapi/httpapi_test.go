package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/app"
	"parley/internal/domain"
	"parley/internal/httpapi"
	"parley/internal/telemetry"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	wire, err := app.NewWire(app.Config{
		Home:        t.TempDir(),
		MaxSessions: 5,
		MaxMessages: 10,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = wire.Close() })

	srv := httpapi.NewServer(wire.Sessions, wire.Messages, wire.Queries, telemetry.NewLogger(false))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	alice := httpapi.NewClient(ts.URL, "alice")
	bob := httpapi.NewClient(ts.URL, "bob")

	require.NoError(t, alice.CreateSession(ctx, "bob"))
	require.NoError(t, alice.Send(ctx, "bob", "hi"))

	notes, err := bob.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.Identity("alice"), notes[0].Sender)

	msgs, err := bob.Messages(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)

	notes, err = bob.Notifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	aliceID, err := alice.SessionID(ctx, "bob")
	require.NoError(t, err)
	bobID, err := bob.SessionID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, aliceID, bobID)

	count, err := alice.MessageCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stats, err := alice.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 5, stats.MaxSessions)
	assert.Equal(t, 10, stats.MaxMessages)

	sessions, err := alice.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.Identity("bob"), sessions[0].Counterparty)

	require.NoError(t, alice.RemoveSession(ctx, "bob"))
	require.NoError(t, bob.RemoveAllSessions(ctx))
}

func TestHTTP_ErrorKindsSurviveTheWire(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	alice := httpapi.NewClient(ts.URL, "alice")
	carol := httpapi.NewClient(ts.URL, "carol")

	require.NoError(t, alice.CreateSession(ctx, "bob"))

	err := alice.CreateSession(ctx, "bob")
	assert.True(t, errors.Is(err, domain.ErrDuplicateAttempt), "got %v", err)

	err = carol.RemoveSession(ctx, "bob")
	assert.True(t, errors.Is(err, domain.ErrNoSession), "got %v", err)

	_, err = alice.SessionID(ctx, "stranger")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestHTTP_MissingCallerHeader(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
