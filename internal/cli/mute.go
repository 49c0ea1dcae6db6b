package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eartrumpet-io/eartrumpet/internal/config"
)

var muteCmd = &cobra.Command{
	Use:       "mute [on|off|toggle]",
	Short:     "Mute or unmute the default playback device",
	Long:      `Mute or unmute the default playback device. Without an argument the mute state is toggled, like a middle click on the tray icon.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off", "toggle"},
	RunE:      runMute,
}

func runMute(cmd *cobra.Command, args []string) error {
	profile, err := config.LoadDeviceProfile()
	if err != nil {
		return fmt.Errorf("failed to load device profile: %w", err)
	}

	entry := profile.DefaultEntry()
	if entry == nil {
		return fmt.Errorf("no default playback device")
	}

	mode := "toggle"
	if len(args) > 0 {
		mode = strings.ToLower(args[0])
	}
	switch mode {
	case "on":
		entry.Muted = true
	case "off":
		entry.Muted = false
	default:
		entry.Muted = !entry.Muted
	}

	if err := config.SaveDeviceProfile(profile); err != nil {
		return fmt.Errorf("failed to save device profile: %w", err)
	}

	state := styleSuccess.Render("unmuted")
	if entry.Muted {
		state = badgeMuted.Render("muted")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleValue.Render(entry.Name), state)
	return nil
}
