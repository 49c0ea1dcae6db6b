package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eartrumpet-io/eartrumpet/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use <id|name>",
	Short: "Set the default playback device",
	Long: `Set the default playback device by id or by name (case-insensitive).

A running tray picks the change up from devices.yaml.`,
	Args: cobra.ExactArgs(1),
	RunE: runUse,
}

func runUse(cmd *cobra.Command, args []string) error {
	profile, err := config.LoadDeviceProfile()
	if err != nil {
		return fmt.Errorf("failed to load device profile: %w", err)
	}

	entry := profile.Find(args[0])
	if entry == nil {
		return fmt.Errorf("no playback device matches %q", args[0])
	}
	if profile.Default == entry.ID {
		fmt.Fprintln(cmd.OutOrStdout(), styleHint.Render(entry.Name+" is already the default device."))
		return nil
	}

	profile.Default = entry.ID
	if err := config.SaveDeviceProfile(profile); err != nil {
		return fmt.Errorf("failed to save device profile: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("Default device set to "+entry.Name+"."))
	return nil
}
