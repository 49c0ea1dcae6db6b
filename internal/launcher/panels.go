package launcher

import (
	"runtime"
	"slices"

	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

// Panel is a system surface the tray can open.
type Panel int

const (
	PanelFlyout Panel = iota
	PanelMixer
	PanelLegacyMixer
	PanelPlaybackDevices
	PanelRecordingDevices
	PanelSoundsControlPanel
)

func (p Panel) String() string {
	switch p {
	case PanelFlyout:
		return "flyout"
	case PanelMixer:
		return "mixer"
	case PanelLegacyMixer:
		return "legacy_mixer"
	case PanelPlaybackDevices:
		return "playback_devices"
	case PanelRecordingDevices:
		return "recording_devices"
	case PanelSoundsControlPanel:
		return "sounds_control_panel"
	}
	return "unknown"
}

// Panels maps each panel to the argv that opens it.
type Panels map[Panel][]string

const macSound = "x-apple.systempreferences:com.apple.preference.sound"

var defaultPanels = map[string]Panels{
	"windows": {
		PanelFlyout:             {"sndvol.exe", "-f"},
		PanelMixer:              {"ms-settings:apps-volume"},
		PanelLegacyMixer:        {"sndvol.exe"},
		PanelPlaybackDevices:    {"control.exe", "mmsys.cpl,,0"},
		PanelRecordingDevices:   {"control.exe", "mmsys.cpl,,1"},
		PanelSoundsControlPanel: {"control.exe", "mmsys.cpl,,2"},
	},
	"linux": {
		PanelFlyout:             {"pavucontrol", "--tab=3"},
		PanelMixer:              {"pavucontrol", "--tab=1"},
		PanelLegacyMixer:        {"pavucontrol"},
		PanelPlaybackDevices:    {"pavucontrol", "--tab=3"},
		PanelRecordingDevices:   {"pavucontrol", "--tab=4"},
		PanelSoundsControlPanel: {"gnome-control-center", "sound"},
	},
	"darwin": {
		PanelFlyout:             {macSound + "?output"},
		PanelMixer:              {macSound},
		PanelLegacyMixer:        {"open", "-a", "Audio MIDI Setup"},
		PanelPlaybackDevices:    {macSound + "?output"},
		PanelRecordingDevices:   {macSound + "?input"},
		PanelSoundsControlPanel: {macSound + "?effects"},
	},
}

// DefaultPanels returns the built-in commands for goos. Unknown systems
// get the Linux table.
func DefaultPanels(goos string) Panels {
	table, ok := defaultPanels[goos]
	if !ok {
		table = defaultPanels["linux"]
	}
	out := make(Panels, len(table))
	for p, argv := range table {
		out[p] = slices.Clone(argv)
	}
	return out
}

// ResolvePanels returns the commands for the running system with the
// overrides from settings applied.
func ResolvePanels(cfg models.PanelsConfig) Panels {
	return resolvePanels(runtime.GOOS, cfg)
}

func resolvePanels(goos string, cfg models.PanelsConfig) Panels {
	panels := DefaultPanels(goos)
	overrides := map[Panel][]string{
		PanelFlyout:             cfg.Flyout,
		PanelMixer:              cfg.Mixer,
		PanelLegacyMixer:        cfg.LegacyMixer,
		PanelPlaybackDevices:    cfg.PlaybackDevices,
		PanelRecordingDevices:   cfg.RecordingDevices,
		PanelSoundsControlPanel: cfg.SoundsControlPanel,
	}
	for p, argv := range overrides {
		if len(argv) > 0 {
			panels[p] = slices.Clone(argv)
		}
	}
	return panels
}
