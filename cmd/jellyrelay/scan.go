package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [library]",
	Short: "Trigger a Jellyfin library scan",
	Long: `Trigger a Jellyfin library scan.

Without arguments, scans all libraries. With a library name, scans only
that library (it must have a cached view id from a sync).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	library := ""
	if len(args) > 0 {
		library = args[0]
	}

	client := NewClient(serverURL, apiKey)
	if err := client.Scan(library); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if library != "" {
		fmt.Printf("Scan triggered for %s\n", library)
	} else {
		fmt.Println("Scan triggered for all libraries")
	}
	return nil
}
