package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// send <peer> <message>: append a message to the session with <peer>.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Send a message to a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			peer := domain.Identity(args[0])

			if err := wire.Messages.Send(me, peer, args[1]); err != nil {
				return err
			}
			fmt.Println("sent")
			return nil
		},
	}
}
