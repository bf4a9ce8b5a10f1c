package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// notifications: print the unread-message queue without clearing it.
func notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show your unread-message notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := callerIdentity()
			if err != nil {
				return err
			}
			notes, err := wire.Queries.Notifications(me)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Println("No notifications")
				return nil
			}
			for _, n := range notes {
				fmt.Printf("unread from %s (session %d)\n", n.Sender, n.SessionID)
			}
			return nil
		},
	}
}
