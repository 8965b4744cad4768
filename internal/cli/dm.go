package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bolt162/buzzlink-app/internal/configuration"
	"github.com/bolt162/buzzlink-app/internal/model"
	"github.com/bolt162/buzzlink-app/internal/view"
)

var dmUserID int64

var dmCmd = &cobra.Command{
	Use:   "dm",
	Short: "Follow a direct-message conversation live; type to send",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer()
		if err != nil {
			return err
		}
		defer container.Close()

		ctx := context.Background()
		sess := container.Session
		sess.Start(ctx)

		other, err := findOtherUser(ctx, container, dmUserID)
		if err != nil {
			return err
		}
		fmt.Printf("@%s — Ctrl-C to quit\n", other.DisplayName)

		v := sess.OpenConversation(ctx, other)

		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				sess.Client().SendDirectMessage(other.ID, line, model.MessageTypeText)
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		printed := 0
		lastTyping := ""
		for {
			select {
			case <-sig:
				return nil
			case <-ticker.C:
				printed = printNewDMs(v, printed)
				lastTyping = printTyping(v.TypingUsers(), lastTyping)
			}
		}
	},
}

// findOtherUser resolves the conversation partner from the existing
// conversation list, falling back to the workspace-member style of starting a
// fresh conversation with someone there is no history with yet.
func findOtherUser(ctx context.Context, container *configuration.Container, userID int64) (model.User, error) {
	conversations, err := container.API.GetConversations(ctx)
	if err == nil {
		for _, c := range conversations {
			if c.OtherUser.ID == userID {
				return c.OtherUser, nil
			}
		}
	}
	return model.User{ID: userID, DisplayName: fmt.Sprintf("user %d", userID)}, nil
}

func printNewDMs(v *view.ConversationView, printed int) int {
	msgs := v.Messages()
	for _, m := range msgs[min(printed, len(msgs)):] {
		fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Format("15:04"), m.Sender.DisplayName, m.Content)
	}
	return len(msgs)
}

func init() {
	dmCmd.Flags().Int64Var(&dmUserID, "user", 0, "backend id of the other user")
	_ = dmCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(dmCmd)
}
