package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification settings and testing",
}

var notifyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show notification formatting settings",
	Args:  cobra.NoArgs,
	RunE:  runNotifyShowCmd,
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long: `Send a test notification through the configured Pushover credentials,
using the live formatting settings and synthetic media metadata.`,
	Args: cobra.NoArgs,
	RunE: runNotifyTestCmd,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyShowCmd)
	notifyCmd.AddCommand(notifyTestCmd)

	notifyTestCmd.Flags().String("type", "movie", "Media type to simulate (movie or episode)")
	notifyTestCmd.Flags().String("device", "", "Pushover device")
	notifyTestCmd.Flags().Int("priority", 0, "Pushover priority")
}

func runNotifyShowCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, apiKey)
	settings, err := client.NotificationSettings()
	if err != nil {
		return fmt.Errorf("failed to fetch settings: %w", err)
	}

	if jsonOutput {
		printJSON(settings)
		return nil
	}

	printNotifyOptions("Movie", settings.Movie)
	fmt.Println()
	printNotifyOptions("Episode", settings.Episode)
	return nil
}

func printNotifyOptions(label string, o NotifyOptions) {
	fmt.Printf("%s notifications:\n", label)
	fmt.Printf("  Title:    %s\n", o.TitleFormat)
	fmt.Printf("  Overview: %s\n", onOff(o.IncludeOverview))
	fmt.Printf("  Codec:    %s\n", onOff(o.IncludeCodec))
	fmt.Printf("  Filesize: %s\n", onOff(o.IncludeFilesize))
	fmt.Printf("  Path:     %s\n", onOff(o.IncludePath))
	fmt.Printf("  Poster:   %s\n", onOff(o.IncludePoster))
	fmt.Printf("  Emojis:   %s\n", onOff(o.UseEmojis))
}

func runNotifyTestCmd(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	device, _ := cmd.Flags().GetString("device")
	priority, _ := cmd.Flags().GetInt("priority")

	client := NewClient(serverURL, apiKey)
	if err := client.TestNotification(mediaType, device, priority); err != nil {
		return fmt.Errorf("test notification failed: %w", err)
	}

	fmt.Println("Test notification sent")
	return nil
}
