package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var markAllRead bool

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show unread notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer()
		if err != nil {
			return err
		}
		defer container.Close()

		ctx := context.Background()
		feed := container.Session.Notifications()
		if err := feed.Load(ctx); err != nil {
			return err
		}

		for _, n := range feed.Items() {
			actor := ""
			if n.Actor != nil {
				actor = n.Actor.DisplayName + ": "
			}
			fmt.Printf("[%s] %s%s\n", n.Type, actor, n.Message)
		}
		fmt.Printf("%d unread\n", feed.UnreadCount())

		if markAllRead {
			if err := feed.MarkAllRead(ctx); err != nil {
				return err
			}
			fmt.Println("all marked read")
		}
		return nil
	},
}

func init() {
	notificationsCmd.Flags().BoolVar(&markAllRead, "mark-all-read", false, "mark everything read after listing")
	rootCmd.AddCommand(notificationsCmd)
}
