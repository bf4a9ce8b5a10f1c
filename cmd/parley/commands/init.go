package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"parley/internal/app"
	"parley/internal/domain"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the parley home directory and a default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(home, "parley.yaml")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}

			defaults, err := yaml.Marshal(map[string]any{
				"storage":      app.StorageFile,
				"listen":       app.DefaultListen,
				"max_sessions": domain.DefaultMaxSessions,
				"max_messages": domain.DefaultMaxMessages,
			})
			if err != nil {
				return err
			}
			content := "# parley configuration\n" +
				"# storage: file | sqlite\n" +
				"# passphrase: <set to seal file storage at rest>\n" +
				string(defaults)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				return err
			}
			fmt.Printf("Initialised %s\n", path)
			return nil
		},
	}
}
