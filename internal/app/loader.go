package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"parley/internal/domain"
)

// DefaultHome returns the default data directory, $HOME/.parley.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".parley"), nil
}

// LoadConfig reads parley.yaml from home, layering PARLEY_* environment
// variables over the file and built-in defaults under it. A missing config
// file is not an error.
func LoadConfig(home string) (Config, error) {
	v := viper.New()
	v.SetDefault("storage", StorageFile)
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("max_sessions", domain.DefaultMaxSessions)
	v.SetDefault("max_messages", domain.DefaultMaxMessages)

	v.SetConfigName("parley")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	v.SetEnvPrefix("PARLEY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Home = home
	return cfg, nil
}
