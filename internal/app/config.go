package app

// Storage backend names accepted in Config.Storage.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// DefaultListen is the daemon's default bind address.
const DefaultListen = "127.0.0.1:8484"

// Config holds runtime wiring options for building the app. Values come from
// parley.yaml in the home directory, PARLEY_* environment variables, or
// flags; zero caps fall back to the defaults.
type Config struct {
	Home        string `mapstructure:"home"`         // data directory, e.g. $HOME/.parley
	Storage     string `mapstructure:"storage"`      // "file" or "sqlite"
	Passphrase  string `mapstructure:"passphrase"`   // optional; seals file storage at rest
	Listen      string `mapstructure:"listen"`       // daemon bind address
	LogFile     string `mapstructure:"log_file"`     // optional daemon log destination
	Verbose     bool   `mapstructure:"verbose"`      // debug-level logging
	MaxSessions int    `mapstructure:"max_sessions"` // per-caller session cap
	MaxMessages int    `mapstructure:"max_messages"` // per-session message cap
}
