package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"parley/internal/domain"
	"parley/internal/telemetry"
)

// CallerHeader carries the authenticated caller identity on every request.
const CallerHeader = "X-Parley-Caller"

// errorBody is the wire form of a typed store failure.
type errorBody struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// sendBody is the request body for posting a message.
type sendBody struct {
	Text string `json:"text"`
}

// idBody is the response body for a session id lookup. 53-bit ids are safe
// as JSON numbers.
type idBody struct {
	ID domain.SessionID `json:"id"`
}

// countBody is the response body for message-count lookups.
type countBody struct {
	Count int `json:"count"`
}

// Stats summarises a caller's usage against the configured caps.
type Stats struct {
	TotalSessions int `json:"total_sessions"`
	MaxSessions   int `json:"max_sessions"`
	MaxMessages   int `json:"max_messages"`
}

// Server serves the store's operations over HTTP.
type Server struct {
	sessions domain.SessionManager
	messages domain.MessageEngine
	queries  domain.QueryService
	log      *telemetry.Logger
}

// NewServer constructs a Server over the given services.
func NewServer(
	sessions domain.SessionManager,
	messages domain.MessageEngine,
	queries domain.QueryService,
	log *telemetry.Logger,
) *Server {
	return &Server{sessions: sessions, messages: messages, queries: queries, log: log}
}

// Handler returns the daemon's route table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/sessions/{peer}", s.handleCreateSession)
	mux.HandleFunc("DELETE /v1/sessions/{peer}", s.handleRemoveSession)
	mux.HandleFunc("DELETE /v1/sessions", s.handleRemoveAll)
	mux.HandleFunc("GET /v1/sessions", s.handleSessions)
	mux.HandleFunc("GET /v1/sessions/{peer}/id", s.handleSessionID)
	mux.HandleFunc("GET /v1/sessions/{peer}/messages", s.handleMessages)
	mux.HandleFunc("POST /v1/sessions/{peer}/messages", s.handleSend)
	mux.HandleFunc("GET /v1/sessions/{peer}/message-count", s.handleMessageCount)
	mux.HandleFunc("GET /v1/notifications", s.handleNotifications)
	mux.HandleFunc("GET /v1/stats", s.handleStats)
	return s.logRequests(mux)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Create(caller, peerOf(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveSession(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Remove(caller, peerOf(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	if err := s.sessions.RemoveAll(caller); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	defer r.Body.Close()
	var body sendBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.messages.Send(caller, peerOf(r), body.Text); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	messages, err := s.queries.Messages(caller, peerOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, messages)
}

func (s *Server) handleMessageCount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	count, err := s.queries.TotalSessionMessages(caller, peerOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, countBody{Count: count})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	notes, err := s.queries.Notifications(caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, notes)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	sessions, err := s.queries.Sessions(caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sessions)
}

func (s *Server) handleSessionID(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	id, err := s.queries.SessionID(caller, peerOf(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, idBody{ID: id})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	total, err := s.queries.TotalSessions(caller)
	if err != nil {
		writeError(w, err)
		return
	}
	limits := s.queries.Limits()
	writeJSON(w, Stats{
		TotalSessions: total,
		MaxSessions:   limits.MaxSessions,
		MaxMessages:   limits.MaxMessages,
	})
}

// logRequests tags each request with an id and records method, path, status
// and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func peerOf(r *http.Request) domain.Identity {
	return domain.Identity(r.PathValue("peer"))
}

func callerOf(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	caller := r.Header.Get(CallerHeader)
	if caller == "" {
		http.Error(w, "missing "+CallerHeader+" header", http.StatusUnauthorized)
		return "", false
	}
	return domain.Identity(caller), true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the closed error-kind set onto HTTP statuses; anything
// untyped is a 500.
func writeError(w http.ResponseWriter, err error) {
	var e *domain.Error
	if !errors.As(err, &e) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	status := http.StatusInternalServerError
	switch e.Kind {
	case domain.KindNoSession, domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindDuplicateAttempt,
		domain.KindMaxSessionsReached,
		domain.KindMaxMessagesReached:
		status = http.StatusConflict
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Kind: string(e.Kind), Detail: e.Detail})
}
