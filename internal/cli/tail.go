package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bolt162/buzzlink-app/internal/model"
	"github.com/bolt162/buzzlink-app/internal/session"
	"github.com/bolt162/buzzlink-app/internal/view"
)

var tailChannelID int64

const refreshInterval = 500 * time.Millisecond

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow a channel live; type to send",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer()
		if err != nil {
			return err
		}
		defer container.Close()

		ctx := context.Background()
		sess := container.Session
		sess.Start(ctx)

		channel, err := container.API.GetChannel(ctx, tailChannelID)
		if err != nil {
			return err
		}
		fmt.Printf("#%s — Ctrl-C to quit\n", channel.Name)

		v := sess.OpenChannel(ctx, channel)

		go readAndSend(sess, channel.ID)

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
				printed = printNewMessages(v, printed)
				lastTyping = printTyping(v.TypingUsers(), lastTyping)
			}
		}
	},
}

func readAndSend(sess *session.Session, channelID int64) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sess.Client().SendMessage(channelID, line, model.MessageTypeText, nil)
	}
}

func printNewMessages(v *view.ChannelView, printed int) int {
	msgs := v.Messages()
	for _, m := range msgs[min(printed, len(msgs)):] {
		fmt.Printf("[%s] %s: %s", m.CreatedAt.Format("15:04"), m.Sender.DisplayName, m.Content)
		if m.ReplyCount > 0 {
			fmt.Printf("  (%d replies)", m.ReplyCount)
		}
		fmt.Println()
	}
	return len(msgs)
}

func printTyping(typing map[string]string, last string) string {
	names := make([]string, 0, len(typing))
	for _, name := range typing {
		names = append(names, name)
	}
	sort.Strings(names)
	line := strings.Join(names, ", ")
	if line != last && line != "" {
		fmt.Printf("… %s typing\n", line)
	}
	return line
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func init() {
	tailCmd.Flags().Int64Var(&tailChannelID, "channel", 0, "channel id to follow")
	_ = tailCmd.MarkFlagRequired("channel")
	rootCmd.AddCommand(tailCmd)
}
