package session

import (
	"fmt"

	"parley/internal/domain"
)

// Service is the session manager.
//
// A conversation between two parties is a pair of directory records sharing
// one session id and one message log. Either party can remove its record
// unilaterally; the log and any pending notifications for the id are
// reclaimed only once the other party's record is gone too. The reference
// check is re-derived by scanning the counterparty's directory at removal
// time rather than kept as a counter, so it cannot drift.
type Service struct {
	directory domain.DirectoryStore
	logs      domain.MessageLogStore
	notes     domain.NotificationStore
	ids       *Generator
	limits    domain.Limits
}

// New constructs a session manager over the given stores.
func New(
	directory domain.DirectoryStore,
	logs domain.MessageLogStore,
	notes domain.NotificationStore,
	limits domain.Limits,
) *Service {
	return &Service{
		directory: directory,
		logs:      logs,
		notes:     notes,
		ids:       NewGenerator(logs),
		limits:    limits.OrDefaults(),
	}
}

// Create establishes a session between caller and counterparty.
//
// The caller's record is always new: an existing session with the same
// counterparty is a DuplicateAttempt, and a directory entry at the session
// cap is MaxSessionsReached. If the counterparty still lists a session back
// to the caller (the caller left earlier and is rejoining), that session's
// id and log are reused; otherwise a fresh id is drawn, the counterparty's
// reciprocal record is written, and an empty log is created at the id.
//
// The cap binds only the initiating caller. The reciprocal record lands
// regardless of the counterparty's count, so inbound creates can carry a
// directory entry past the cap; that party's own next Create is then
// refused.
func (s *Service) Create(caller, counterparty domain.Identity) error {
	sessions, ok, err := s.directory.LoadSessions(caller)
	if err != nil {
		return err
	}
	if ok {
		if len(sessions) >= s.limits.MaxSessions {
			return domain.MaxSessionsReached(fmt.Sprintf(
				"%s already holds %d sessions", caller, len(sessions)))
		}
		for _, sess := range sessions {
			if sess.Counterparty == counterparty {
				return domain.DuplicateAttempt(fmt.Sprintf(
					"%s already has a session with %s", caller, counterparty))
			}
		}
	}

	id, rejoined, err := s.reciprocalID(caller, counterparty)
	if err != nil {
		return err
	}
	if !rejoined {
		if id, err = s.ids.Next(); err != nil {
			return err
		}
	}

	sessions = append(sessions, domain.Session{ID: id, Counterparty: counterparty})
	if err := s.directory.SaveSessions(caller, sessions); err != nil {
		return err
	}
	if rejoined {
		// The counterparty's record and the shared log already exist.
		return nil
	}

	peerSessions, _, err := s.directory.LoadSessions(counterparty)
	if err != nil {
		return err
	}
	peerSessions = append(peerSessions, domain.Session{ID: id, Counterparty: caller})
	if err := s.directory.SaveSessions(counterparty, peerSessions); err != nil {
		return err
	}
	return s.logs.SaveMessages(id, nil)
}

// Remove deletes the caller's record for counterparty and applies the
// cascade rule. The second removal of the same counterparty is NotFound,
// not a crash.
func (s *Service) Remove(caller, counterparty domain.Identity) error {
	sessions, ok, err := s.directory.LoadSessions(caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NoSession(fmt.Sprintf("%s has no sessions", caller))
	}

	kept := make([]domain.Session, 0, len(sessions))
	var removed domain.Session
	for _, sess := range sessions {
		if sess.Counterparty == counterparty {
			removed = sess
			continue
		}
		kept = append(kept, sess)
	}
	if len(kept) == len(sessions) {
		return domain.NotFound(fmt.Sprintf(
			"%s has no session with %s", caller, counterparty))
	}

	if err := s.directory.SaveSessions(caller, kept); err != nil {
		return err
	}
	return s.cascade(caller, removed)
}

// RemoveAll deletes every session in the caller's directory entry, applying
// the cascade rule per session, and leaves the caller with an empty list.
func (s *Service) RemoveAll(caller domain.Identity) error {
	sessions, ok, err := s.directory.LoadSessions(caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NoSession(fmt.Sprintf("%s has no sessions", caller))
	}

	if err := s.directory.SaveSessions(caller, nil); err != nil {
		return err
	}
	for _, sess := range sessions {
		if err := s.cascade(caller, sess); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the id of the caller's session with counterparty by linear
// scan of the caller's directory entry. The scan is bounded by the session
// cap, so no secondary index is kept.
func (s *Service) Resolve(caller, counterparty domain.Identity) (domain.SessionID, error) {
	sessions, ok, err := s.directory.LoadSessions(caller)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.NoSession(fmt.Sprintf("%s has no sessions", caller))
	}
	for _, sess := range sessions {
		if sess.Counterparty == counterparty {
			return sess.ID, nil
		}
	}
	return 0, domain.NotFound(fmt.Sprintf(
		"%s has no session with %s", caller, counterparty))
}

// cascade reclaims the shared state behind a removed session once the
// counterparty no longer references it: no directory entry at all, or an
// entry without a session back to the caller. While the counterparty still
// lists the caller, the log and notifications stay untouched and the session
// remains usable by the counterparty alone.
func (s *Service) cascade(caller domain.Identity, removed domain.Session) error {
	peerSessions, ok, err := s.directory.LoadSessions(removed.Counterparty)
	if err != nil {
		return err
	}
	if ok {
		for _, sess := range peerSessions {
			if sess.Counterparty == caller {
				return nil
			}
		}
	}

	if err := s.logs.RemoveLog(removed.ID); err != nil {
		return err
	}
	if err := s.purgeNotifications(caller, removed.ID); err != nil {
		return err
	}
	return s.purgeNotifications(removed.Counterparty, removed.ID)
}

// purgeNotifications drops every notification carrying id from owner's queue.
func (s *Service) purgeNotifications(owner domain.Identity, id domain.SessionID) error {
	notes, ok, err := s.notes.LoadNotifications(owner)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	kept := notes[:0]
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

// reciprocalID looks for a session under counterparty that points back at
// caller and returns its id.
func (s *Service) reciprocalID(caller, counterparty domain.Identity) (domain.SessionID, bool, error) {
	peerSessions, ok, err := s.directory.LoadSessions(counterparty)
	if err != nil || !ok {
		return 0, false, err
	}
	for _, sess := range peerSessions {
		if sess.Counterparty == caller {
			return sess.ID, true, nil
		}
	}
	return 0, false, nil
}

// Compile-time assertions that Service implements the domain contracts.
var (
	_ domain.SessionManager  = (*Service)(nil)
	_ domain.SessionResolver = (*Service)(nil)
)
