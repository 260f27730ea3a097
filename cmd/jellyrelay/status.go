package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Long: `Show daemon status: configured integrations, library count, and how
many files are currently inside the duplicate-suppression window.`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	jellyfin := "not configured"
	if status.JellyfinConfigured {
		jellyfin = "configured"
	}
	pushover := "not configured"
	if status.PushoverConfigured {
		pushover = "configured"
	}

	fmt.Printf("Server:     %s (%s)\n", serverURL, status.Status)
	fmt.Printf("Jellyfin:   %s\n", jellyfin)
	fmt.Printf("Pushover:   %s\n", pushover)
	fmt.Printf("Libraries:  %d\n", status.Libraries)
	fmt.Printf("Tracked:    %d files in dedup window\n", status.TrackedFiles)
	fmt.Printf("In flight:  %d tasks\n", status.InFlight)
	return nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
