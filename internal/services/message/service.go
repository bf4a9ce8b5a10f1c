package message

import (
	"fmt"
	"time"

	"parley/internal/domain"
)

// Service is the messaging engine.
//
// Send performs two independent key writes in a fixed order: the log append
// commits first, the notification enqueue second. A fault between them
// leaves a delivered-but-unnotified message; per-key atomicity is the only
// guarantee the substrate offers, and the gap is a documented property.
type Service struct {
	resolver domain.SessionResolver
	logs     domain.MessageLogStore
	notes    domain.NotificationStore
	limits   domain.Limits
	now      func() int64
}

// New constructs a messaging engine over the given stores.
func New(
	resolver domain.SessionResolver,
	logs domain.MessageLogStore,
	notes domain.NotificationStore,
	limits domain.Limits,
) *Service {
	return &Service{
		resolver: resolver,
		logs:     logs,
		notes:    notes,
		limits:   limits.OrDefaults(),
		now:      func() int64 { return time.Now().Unix() },
	}
}

// Send appends text to the caller's session with receiver and enqueues an
// unread marker in the receiver's notification queue.
func (s *Service) Send(caller, receiver domain.Identity, text string) error {
	id, err := s.resolver.Resolve(caller, receiver)
	if err != nil {
		return err
	}

	messages, ok, err := s.logs.LoadMessages(id)
	if err != nil {
		return err
	}
	if !ok {
		// A session without its log means the collections disagree; refuse
		// rather than resurrect the log.
		return domain.NotFound(fmt.Sprintf("no message log for session %d", id))
	}
	// The append is rejected only once the log already exceeds the cap, so a
	// log tops out at cap+1 entries.
	if len(messages) > s.limits.MaxMessages {
		return domain.MaxMessagesReached(fmt.Sprintf(
			"session %d holds %d messages", id, len(messages)))
	}

	now := s.now()
	messages = append(messages, domain.Message{
		Sender:   caller,
		Receiver: receiver,
		Text:     text,
		SentUTC:  now,
	})
	if err := s.logs.SaveMessages(id, messages); err != nil {
		return err
	}

	// Second, independent key write. Duplicates accumulate until the
	// receiver views the session; the queue has no cap.
	notes, _, err := s.notes.LoadNotifications(receiver)
	if err != nil {
		return err
	}
	notes = append(notes, domain.Notification{
		Sender:    caller,
		SessionID: id,
		SentUTC:   now,
	})
	return s.notes.SaveNotifications(receiver, notes)
}

// Compile-time assertion that Service implements domain.MessageEngine.
var _ domain.MessageEngine = (*Service)(nil)
