package query

import (
	"fmt"

	"parley/internal/domain"
)

// Service is the query layer. All lookups by counterparty go through the
// resolver's linear scan; reads are pure except Messages, which also marks
// the session read by clearing its notifications from the caller's queue.
type Service struct {
	directory domain.DirectoryStore
	logs      domain.MessageLogStore
	notes     domain.NotificationStore
	resolver  domain.SessionResolver
	limits    domain.Limits
}

// New constructs a query service over the given stores.
func New(
	directory domain.DirectoryStore,
	logs domain.MessageLogStore,
	notes domain.NotificationStore,
	resolver domain.SessionResolver,
	limits domain.Limits,
) *Service {
	return &Service{
		directory: directory,
		logs:      logs,
		notes:     notes,
		resolver:  resolver,
		limits:    limits.OrDefaults(),
	}
}

// Messages returns the full ordered log of the caller's session with
// counterparty and clears every notification for that session id from the
// caller's own queue. Notifications for other sessions are left untouched.
func (s *Service) Messages(caller, counterparty domain.Identity) ([]domain.Message, error) {
	id, err := s.resolver.Resolve(caller, counterparty)
	if err != nil {
		return nil, err
	}
	messages, ok, err := s.logs.LoadMessages(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Should not happen while the session exists; defends against a
		// log removed out from under the directory.
		return nil, domain.NotFound(fmt.Sprintf("no message log for session %d", id))
	}
	if err := s.markRead(caller, id); err != nil {
		return nil, err
	}
	return messages, nil
}

// Notifications returns the caller's queue unmodified; an empty list when
// the caller has never been notified.
func (s *Service) Notifications(caller domain.Identity) ([]domain.Notification, error) {
	notes, ok, err := s.notes.LoadNotifications(caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Notification{}, nil
	}
	return notes, nil
}

// SessionID resolves the caller's session with counterparty.
func (s *Service) SessionID(caller, counterparty domain.Identity) (domain.SessionID, error) {
	return s.resolver.Resolve(caller, counterparty)
}

// Sessions returns the caller's full session list.
func (s *Service) Sessions(caller domain.Identity) ([]domain.Session, error) {
	sessions, ok, err := s.directory.LoadSessions(caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NoSession(fmt.Sprintf("%s has no sessions", caller))
	}
	return sessions, nil
}

// TotalSessions returns the caller's session count. Unlike the other
// lookups it never rejects: no directory entry is simply zero.
func (s *Service) TotalSessions(caller domain.Identity) (int, error) {
	sessions, _, err := s.directory.LoadSessions(caller)
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

// TotalSessionMessages returns the length of the log behind the caller's
// session with counterparty.
func (s *Service) TotalSessionMessages(caller, counterparty domain.Identity) (int, error) {
	id, err := s.resolver.Resolve(caller, counterparty)
	if err != nil {
		return 0, err
	}
	messages, ok, err := s.logs.LoadMessages(id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.NotFound(fmt.Sprintf("no message log for session %d", id))
	}
	return len(messages), nil
}

// Limits returns the configured capacity caps.
func (s *Service) Limits() domain.Limits { return s.limits }

// markRead drops every notification carrying id from owner's queue.
func (s *Service) markRead(owner domain.Identity, id domain.SessionID) error {
	notes, ok, err := s.notes.LoadNotifications(owner)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	kept := make([]domain.Notification, 0, len(notes))
	for _, n := range notes {
		if n.SessionID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return nil
	}
	return s.notes.SaveNotifications(owner, kept)
}

// Compile-time assertion that Service implements domain.QueryService.
var _ domain.QueryService = (*Service)(nil)
