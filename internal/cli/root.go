package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bolt162/buzzlink-app/internal/configuration"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "buzzlink",
	Short: "BuzzLink terminal client",
	Long: `BuzzLink terminal client: follow channels and direct-message
conversations live, and manage notifications, over one shared connection.`,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
}

func buildContainer() (*configuration.Container, error) {
	return configuration.BuildContainer(configPath)
}
