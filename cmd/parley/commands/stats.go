package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// stats [peer]: show totals against the configured caps; with a peer, also
// the message count for that session.
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [peer]",
		Short: "Show session totals and configured limits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			total, err := wire.Queries.TotalSessions(me)
			if err != nil {
				return err
			}
			limits := wire.Queries.Limits()
			fmt.Printf("sessions: %d / %d\n", total, limits.MaxSessions)
			fmt.Printf("messages per session: up to %d\n", limits.MaxMessages)

			if len(args) == 1 {
				peer := domain.Identity(args[0])
				count, err := wire.Queries.TotalSessionMessages(me, peer)
				if err != nil {
					return err
				}
				fmt.Printf("messages with %s: %d\n", peer, count)
			}
			return nil
		},
	}
}
