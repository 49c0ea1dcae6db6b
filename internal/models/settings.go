package models

// PanelsConfig overrides the commands used to open system panels.
// Each entry is an argv list; empty means the platform default.
type PanelsConfig struct {
	Flyout             []string `yaml:"flyout,omitempty"`
	Mixer              []string `yaml:"mixer,omitempty"`
	LegacyMixer        []string `yaml:"legacy_mixer,omitempty"`
	PlaybackDevices    []string `yaml:"playback_devices,omitempty"`
	RecordingDevices   []string `yaml:"recording_devices,omitempty"`
	SoundsControlPanel []string `yaml:"sounds_control_panel,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	File    bool `yaml:"file"`    // also write to ~/.eartrumpet/logs/eartrumpet.log
	Verbose bool `yaml:"verbose"` // log every tray event
}

// Settings represents global application settings.
// This corresponds to ~/.eartrumpet/settings.yaml.
type Settings struct {
	Version     int          `yaml:"version"`
	Locale      string       `yaml:"locale"` // BCP 47 tag, empty = system
	FeedbackURL string       `yaml:"feedback_url"`
	Panels      PanelsConfig `yaml:"panels"`
	Log         LogConfig    `yaml:"log"`
}

// DefaultFeedbackURL is where "Send feedback" leads unless overridden.
const DefaultFeedbackURL = "https://github.com/File-New-Project/EarTrumpet/issues"

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:     1,
		Locale:      "",
		FeedbackURL: DefaultFeedbackURL,
		Log: LogConfig{
			File:    true,
			Verbose: false,
		},
	}
}
