package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// messages <peer>: print the session history, marking it read.
func messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <peer>",
		Short: "Show the session history with a peer and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			peer := domain.Identity(args[0])

			msgs, err := wire.Queries.Messages(me, peer)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				at := time.Unix(m.SentUTC, 0).UTC().Format(time.RFC3339)
				fmt.Printf("%s [%s] %s\n", at, m.Sender, m.Text)
			}
			return nil
		},
	}
}
