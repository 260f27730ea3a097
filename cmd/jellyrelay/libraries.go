package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List configured libraries",
	Args:  cobra.NoArgs,
	RunE:  runLibrariesCmd,
}

var librariesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync libraries from the Jellyfin server",
	Long: `Pull library views from Jellyfin and reconcile the configured library
table: new views are added with defaults, known views get their cached
id refreshed. Configured libraries matching no view produce rename
suggestions.`,
	Args: cobra.NoArgs,
	RunE: runLibrariesSyncCmd,
}

var librariesSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Update a library's relay settings",
	Long: `Update per-library relay settings.

Examples:
  jellyrelay libraries set Movies --notify=false
  jellyrelay libraries set TV --watch-path /data/tv --device phone`,
	Args: cobra.ExactArgs(1),
	RunE: runLibrariesSetCmd,
}

func init() {
	rootCmd.AddCommand(librariesCmd)
	librariesCmd.AddCommand(librariesSyncCmd)
	librariesCmd.AddCommand(librariesSetCmd)

	librariesSetCmd.Flags().String("watch-path", "", "Watch folder to match incoming files against")
	librariesSetCmd.Flags().Bool("scan", true, "Trigger scans for this library")
	librariesSetCmd.Flags().Bool("notify", true, "Send notifications for this library")
	librariesSetCmd.Flags().String("device", "", "Pushover device override")
	librariesSetCmd.Flags().Int("priority", 0, "Pushover priority override")
}

func runLibrariesCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	libs, err := client.Libraries()
	if err != nil {
		return fmt.Errorf("failed to fetch libraries: %w", err)
	}

	if jsonOutput {
		printJSON(libs)
		return nil
	}

	if len(libs.Libraries) == 0 {
		fmt.Println("No libraries configured. Run 'jellyrelay libraries sync'.")
		return nil
	}

	fmt.Printf("Libraries (%d):\n\n", libs.Total)
	fmt.Printf("  %-20s %-30s %-6s %-7s %s\n", "NAME", "WATCH PATH", "SCAN", "NOTIFY", "DEVICE")
	fmt.Println("  " + strings.Repeat("-", 75))
	for _, l := range libs.Libraries {
		fmt.Printf("  %-20s %-30s %-6s %-7s %s\n",
			l.Name, l.WatchPath, onOff(l.ScanEnabled), onOff(l.NotifyEnabled), l.Device)
	}
	return nil
}

func runLibrariesSyncCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	result, err := client.SyncLibraries()
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	fmt.Printf("Synced: %d added, %d updated, %d total\n", result.Added, result.Updated, result.Total)
	for _, s := range result.Suggestions {
		fmt.Printf("  %q matches no server view; did you mean %q? (%.0f%% similar)\n",
			s.Library, s.ClosestView, s.Score*100)
	}
	return nil
}

func runLibrariesSetCmd(cmd *cobra.Command, args []string) error {
	req := &UpdateLibraryRequest{}
	if cmd.Flags().Changed("watch-path") {
		v, _ := cmd.Flags().GetString("watch-path")
		req.WatchPath = &v
	}
	if cmd.Flags().Changed("scan") {
		v, _ := cmd.Flags().GetBool("scan")
		req.ScanEnabled = &v
	}
	if cmd.Flags().Changed("notify") {
		v, _ := cmd.Flags().GetBool("notify")
		req.NotifyEnabled = &v
	}
	if cmd.Flags().Changed("device") {
		v, _ := cmd.Flags().GetString("device")
		req.Device = &v
	}
	if cmd.Flags().Changed("priority") {
		v, _ := cmd.Flags().GetInt("priority")
		req.Priority = &v
	}

	client := NewClient(serverURL, apiKey)
	lib, err := client.UpdateLibrary(args[0], req)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if jsonOutput {
		printJSON(lib)
		return nil
	}

	fmt.Printf("Updated %s: scan=%s notify=%s", lib.Name, onOff(lib.ScanEnabled), onOff(lib.NotifyEnabled))
	if lib.Device != "" {
		fmt.Printf(" device=%s", lib.Device)
	}
	fmt.Println()
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
