package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var channelsWorkspaceID int64

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer()
		if err != nil {
			return err
		}
		defer container.Close()

		channels, err := container.API.GetChannels(context.Background(), channelsWorkspaceID)
		if err != nil {
			return err
		}

		for _, ch := range channels {
			fmt.Printf("%6d  #%s", ch.ID, ch.Name)
			if ch.Description != "" {
				fmt.Printf("  %s", ch.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	channelsCmd.Flags().Int64Var(&channelsWorkspaceID, "workspace", 0, "restrict to one workspace")
	rootCmd.AddCommand(channelsCmd)
}
