package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// sessions: list your sessions.
func sessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List your sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			sessions, err := wire.Queries.Sessions(me)
			if err != nil {
				return err
			}
			for _, s := range sessions {
				fmt.Printf("%d\t%s\n", s.ID, s.Counterparty)
			}
			return nil
		},
	}
}

// session-id <peer>: print the id joining you and <peer>.
func sessionIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session-id <peer>",
		Short: "Show the id of your session with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			id, err := wire.Queries.SessionID(me, domain.Identity(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}
