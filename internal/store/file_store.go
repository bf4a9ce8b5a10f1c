package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"parley/internal/domain"
)

const (
	directoryFile     = "directory.json"     // map[Identity][]Session
	messagesFile      = "messages.json"      // map[SessionID][]Message
	notificationsFile = "notifications.json" // map[Identity][]Notification
)

// FileStore keeps all three collections as JSON files under one directory.
// A single mutex serialises every operation, so each call is an atomic
// read-modify-write of its file.
type FileStore struct {
	dir        string
	passphrase string // when non-empty, files are sealed at rest
	mu         sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir with plaintext files.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// NewSealedFileStore returns a FileStore whose files are encrypted with a
// key derived from passphrase.
func NewSealedFileStore(dir, passphrase string) *FileStore {
	return &FileStore{dir: dir, passphrase: passphrase}
}

// ---------- Session directory ----------

// LoadSessions retrieves owner's session list. ok is false when owner has no
// directory entry.
func (s *FileStore) LoadSessions(owner domain.Identity) ([]domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.Identity][]domain.Session{}
	if err := s.read(directoryFile, &m); err != nil {
		return nil, false, err
	}
	sessions, ok := m[owner]
	return sessions, ok, nil
}

// SaveSessions writes owner's session list, creating the entry if absent.
func (s *FileStore) SaveSessions(owner domain.Identity, sessions []domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.Identity][]domain.Session{}
	if err := s.read(directoryFile, &m); err != nil {
		return err
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	m[owner] = sessions
	return s.write(directoryFile, m)
}

// ---------- Message logs ----------

// LoadMessages retrieves the log at id. ok is false when no log exists.
func (s *FileStore) LoadMessages(id domain.SessionID) ([]domain.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.SessionID][]domain.Message{}
	if err := s.read(messagesFile, &m); err != nil {
		return nil, false, err
	}
	messages, ok := m[id]
	return messages, ok, nil
}

// SaveMessages writes the log at id, creating it if absent.
func (s *FileStore) SaveMessages(id domain.SessionID, messages []domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.SessionID][]domain.Message{}
	if err := s.read(messagesFile, &m); err != nil {
		return err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	m[id] = messages
	return s.write(messagesFile, m)
}

// RemoveLog deletes the log at id. Removing an absent log is not an error.
func (s *FileStore) RemoveLog(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.SessionID][]domain.Message{}
	if err := s.read(messagesFile, &m); err != nil {
		return err
	}
	if _, ok := m[id]; !ok {
		return nil
	}
	delete(m, id)
	return s.write(messagesFile, m)
}

// HasLog reports whether a log exists at id.
func (s *FileStore) HasLog(id domain.SessionID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.SessionID][]domain.Message{}
	if err := s.read(messagesFile, &m); err != nil {
		return false, err
	}
	_, ok := m[id]
	return ok, nil
}

// ---------- Notification queues ----------

// LoadNotifications retrieves owner's queue. ok is false when owner has never
// been notified.
func (s *FileStore) LoadNotifications(owner domain.Identity) ([]domain.Notification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.Identity][]domain.Notification{}
	if err := s.read(notificationsFile, &m); err != nil {
		return nil, false, err
	}
	notes, ok := m[owner]
	return notes, ok, nil
}

// SaveNotifications writes owner's queue, creating it if absent.
func (s *FileStore) SaveNotifications(owner domain.Identity, notes []domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.Identity][]domain.Notification{}
	if err := s.read(notificationsFile, &m); err != nil {
		return err
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	m[owner] = notes
	return s.write(notificationsFile, m)
}

// ---------- helpers ----------

// read decodes the named collection file into v, unsealing first when the
// store carries a passphrase. An absent file leaves v untouched.
func (s *FileStore) read(name string, v any) error {
	b, err := loadFile(filepath.Join(s.dir, name))
	if err != nil || b == nil {
		return err
	}
	if s.passphrase != "" {
		if b, err = unseal(s.passphrase, b); err != nil {
			return err
		}
	}
	return json.Unmarshal(b, v)
}

// write encodes v and replaces the named collection file. Plaintext files
// are indented for inspection; sealed files are opaque blobs.
func (s *FileStore) write(name string, v any) error {
	var b []byte
	var err error
	if s.passphrase == "" {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		var raw []byte
		if raw, err = json.Marshal(v); err == nil {
			N, r, p := scryptParamsDefault()
			b, err = seal(s.passphrase, raw, N, r, p)
		}
	}
	if err != nil {
		return err
	}
	return storeFile(filepath.Join(s.dir, name), b, 0o600)
}

// loadFile reads path; an absent file yields nil bytes, not an error.
func loadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

// storeFile replaces path through a temp file in the same directory, so a
// reader never observes a partially written collection.
func storeFile(path string, b []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Compile-time assertions that FileStore implements the domain store interfaces.
var (
	_ domain.DirectoryStore    = (*FileStore)(nil)
	_ domain.MessageLogStore   = (*FileStore)(nil)
	_ domain.NotificationStore = (*FileStore)(nil)
)
