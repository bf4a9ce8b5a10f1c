package domain

import (
	interfaces "parley/internal/domain/interfaces"
	types "parley/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Identity     = types.Identity
	SessionID    = types.SessionID
	Session      = types.Session
	Message      = types.Message
	Notification = types.Notification
	Limits       = types.Limits
)

// Default capacity limits re-exported from the types subpackage.
const (
	DefaultMaxSessions = types.DefaultMaxSessions
	DefaultMaxMessages = types.DefaultMaxMessages
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SessionManager    = interfaces.SessionManager
	SessionResolver   = interfaces.SessionResolver
	MessageEngine     = interfaces.MessageEngine
	QueryService      = interfaces.QueryService
	DirectoryStore    = interfaces.DirectoryStore
	MessageLogStore   = interfaces.MessageLogStore
	NotificationStore = interfaces.NotificationStore
)
