package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// remove-session <peer>: drop your side of the session with <peer>.
func removeSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-session <peer>",
		Short: "Remove your session with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			peer := domain.Identity(args[0])

			if err := wire.Sessions.Remove(me, peer); err != nil {
				return fmt.Errorf("removing session with %q: %w", peer, err)
			}
			fmt.Printf("Session with %s removed\n", peer)
			return nil
		},
	}
}

// remove-all: drop every session you hold.
func removeAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-all",
		Short: "Remove all of your sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			if err := wire.Sessions.RemoveAll(me); err != nil {
				return err
			}
			fmt.Println("All sessions removed")
			return nil
		},
	}
}
