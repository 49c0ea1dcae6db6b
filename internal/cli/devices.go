package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/eartrumpet-io/eartrumpet/internal/audio"
	"github.com/eartrumpet-io/eartrumpet/internal/config"
	"github.com/eartrumpet-io/eartrumpet/internal/locale"
	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

var devicesCmd = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"ls"},
	Short:   "List playback devices",
	Args:    cobra.NoArgs,
	RunE:    runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	profile, err := config.LoadDeviceProfile()
	if err != nil {
		return fmt.Errorf("failed to load device profile: %w", err)
	}
	printDevices(cmd.OutOrStdout(), profile, locale.Resolve(locale.SystemPreferences()...))
	return nil
}

func printDevices(out io.Writer, profile *models.DeviceProfile, bundle *locale.Bundle) {
	if len(profile.Devices) == 0 {
		fmt.Fprintln(out, styleHint.Render(bundle.ContextMenuNoDevices))
		return
	}

	devices := slices.Clone(profile.Devices)
	col := bundle.Collator()
	slices.SortStableFunc(devices, func(a, b models.DeviceEntry) int {
		return col.CompareString(a.Name, b.Name)
	})

	for _, d := range devices {
		marker := "  "
		name := styleValue.Render(d.Name)
		if d.ID == profile.Default {
			marker = badgeDefault.Render("* ")
			name = badgeDefault.Render(d.Name)
		}
		volume := badgeVolume.Render(fmt.Sprintf("%d%%", audio.ToVolumeInt(d.Volume)))
		line := fmt.Sprintf("%s%s %s  %s", marker, volume, name, styleLabel.Render(d.ID))
		if d.Muted {
			line += " " + badgeMuted.Render("muted")
		}
		fmt.Fprintln(out, line)
	}
}
