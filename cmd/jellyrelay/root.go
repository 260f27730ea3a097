package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	apiKey     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "jellyrelay",
	Short: "CLI client for the jellyrelay daemon",
	Long: `jellyrelay - CLI client for the jellyrelay daemon

Inspect and manage the relay that turns Sonarr/Radarr import webhooks
into Jellyfin library scans and Pushover notifications.

Run 'jellyrelayd' to start the daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8486", "Server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("JELLYRELAY_API_KEY"), "API key (webhook token)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("jellyrelay {{.Version}}\n")
}
