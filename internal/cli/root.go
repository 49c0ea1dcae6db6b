// Package cli implements the eartrumpet CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eartrumpet",
	Short: "Volume control from the notification area",
	Long: `EarTrumpet puts the default playback device in the notification area.

Left click opens the volume flyout, middle click toggles mute and right
click lists playback devices and sound panels. Without a subcommand the
tray is started.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRun,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln(styleError.Render("Error:"), err)
	}
	return err
}

func init() {
	addRunFlags(rootCmd)

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(muteCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(versionCmd)
}
