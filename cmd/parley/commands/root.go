package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/app"
	"parley/internal/domain"
	"parley/internal/telemetry"
)

var (
	home    string
	caller  string
	verbose bool

	cfg  app.Config
	wire *app.Wire
	log  *telemetry.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:   "parley",
		Short: "Pairwise messaging store CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			var err error
			if cfg, err = app.LoadConfig(home); err != nil {
				return err
			}
			if verbose {
				cfg.Verbose = true
			}
			log = telemetry.NewLogger(cfg.Verbose)
			if wire, err = app.NewWire(cfg); err != nil {
				return err
			}
			log.Debug("app wired", "home", cfg.Home, "storage", cfg.Storage)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.parley)")
	root.PersistentFlags().StringVar(&caller, "as", "", "caller identity to act as")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		initCmd(),
		createSessionCmd(),
		removeSessionCmd(),
		removeAllCmd(),
		sendCmd(),
		messagesCmd(),
		notificationsCmd(),
		sessionsCmd(),
		sessionIDCmd(),
		statsCmd(),
	)
	return root.Execute()
}

// callerIdentity returns the identity named by --as.
func callerIdentity() (domain.Identity, error) {
	if caller == "" {
		return "", fmt.Errorf("caller identity required (--as)")
	}
	return domain.Identity(caller), nil
}
