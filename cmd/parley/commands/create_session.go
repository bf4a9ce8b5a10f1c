package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// create-session <peer>: establish a session with <peer>.
func createSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-session <peer>",
		Short: "Establish a session with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			peer := domain.Identity(args[0])

			if err := wire.Sessions.Create(me, peer); err != nil {
				return fmt.Errorf("creating session with %q: %w", peer, err)
			}
			id, err := wire.Queries.SessionID(me, peer)
			if err != nil {
				return err
			}
			fmt.Printf("Session %d created with %s\n", id, peer)
			return nil
		},
	}
}
