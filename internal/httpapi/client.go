package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"parley/internal/domain"
)

// Client calls a parleyd instance on behalf of one caller identity.
type Client struct {
	base   string
	caller domain.Identity
	http   *http.Client
}

// NewClient returns a Client for base (e.g. http://127.0.0.1:8484) acting as
// caller.
func NewClient(base string, caller domain.Identity) *Client {
	return &Client{base: base, caller: caller, http: http.DefaultClient}
}

// CreateSession establishes a session with peer.
func (c *Client) CreateSession(ctx context.Context, peer domain.Identity) error {
	return c.do(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(peer.String()), nil, nil)
}

// RemoveSession removes the session with peer.
func (c *Client) RemoveSession(ctx context.Context, peer domain.Identity) error {
	return c.do(ctx, http.MethodDelete, "/v1/sessions/"+url.PathEscape(peer.String()), nil, nil)
}

// RemoveAllSessions removes every session the caller holds.
func (c *Client) RemoveAllSessions(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/sessions", nil, nil)
}

// Send posts text into the session with peer.
func (c *Client) Send(ctx context.Context, peer domain.Identity, text string) error {
	path := "/v1/sessions/" + url.PathEscape(peer.String()) + "/messages"
	return c.do(ctx, http.MethodPost, path, sendBody{Text: text}, nil)
}

// Messages returns the session history with peer, marking it read.
func (c *Client) Messages(ctx context.Context, peer domain.Identity) ([]domain.Message, error) {
	var out []domain.Message
	path := "/v1/sessions/" + url.PathEscape(peer.String()) + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Notifications returns the caller's unread-message queue.
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/v1/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SessionID resolves the id of the caller's session with peer.
func (c *Client) SessionID(ctx context.Context, peer domain.Identity) (domain.SessionID, error) {
	var out idBody
	path := "/v1/sessions/" + url.PathEscape(peer.String()) + "/id"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Sessions returns the caller's session list.
func (c *Client) Sessions(ctx context.Context) ([]domain.Session, error) {
	var out []domain.Session
	if err := c.do(ctx, http.MethodGet, "/v1/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MessageCount returns the length of the session log with peer.
func (c *Client) MessageCount(ctx context.Context, peer domain.Identity) (int, error) {
	var out countBody
	path := "/v1/sessions/" + url.PathEscape(peer.String()) + "/message-count"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Stats returns the caller's totals and the configured caps.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/v1/stats", nil, &out); err != nil {
		return Stats{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(CallerHeader, c.caller.String())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(resp, method, path)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// decodeError rebuilds a typed store failure from an error body, falling
// back to a plain error for anything else.
func decodeError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Kind != "" {
		return &domain.Error{Kind: domain.ErrorKind(body.Kind), Detail: body.Detail}
	}
	return fmt.Errorf("parleyd %s %s: %s", method, path, resp.Status)
}
