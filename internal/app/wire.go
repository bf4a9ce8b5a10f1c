package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"parley/internal/domain"
	messagesvc "parley/internal/services/message"
	querysvc "parley/internal/services/query"
	sessionsvc "parley/internal/services/session"
	"parley/internal/store"
)

const sqliteFile = "parley.db"

// Wire bundles the stores and services for the CLI and daemon.
type Wire struct {
	Directory domain.DirectoryStore
	Logs      domain.MessageLogStore
	Notes     domain.NotificationStore
	Sessions  domain.SessionManager
	Resolver  domain.SessionResolver
	Messages  domain.MessageEngine
	Queries   domain.QueryService

	closer io.Closer
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home directory: %w", err)
	}

	var (
		directory domain.DirectoryStore
		logs      domain.MessageLogStore
		notes     domain.NotificationStore
		closer    io.Closer
	)
	switch cfg.Storage {
	case StorageSQLite:
		db, err := store.NewSQLiteStore(filepath.Join(cfg.Home, sqliteFile))
		if err != nil {
			return nil, err
		}
		directory, logs, notes, closer = db, db, db, db
	case StorageFile, "":
		var fs *store.FileStore
		if cfg.Passphrase != "" {
			fs = store.NewSealedFileStore(cfg.Home, cfg.Passphrase)
		} else {
			fs = store.NewFileStore(cfg.Home)
		}
		directory, logs, notes = fs, fs, fs
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	limits := domain.Limits{
		MaxSessions: cfg.MaxSessions,
		MaxMessages: cfg.MaxMessages,
	}.OrDefaults()

	sessions := sessionsvc.New(directory, logs, notes, limits)
	messages := messagesvc.New(sessions, logs, notes, limits)
	queries := querysvc.New(directory, logs, notes, sessions, limits)

	return &Wire{
		Directory: directory,
		Logs:      logs,
		Notes:     notes,
		Sessions:  sessions,
		Resolver:  sessions,
		Messages:  messages,
		Queries:   queries,
		closer:    closer,
	}, nil
}

// Close releases the storage backend, when it holds resources.
func (w *Wire) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
