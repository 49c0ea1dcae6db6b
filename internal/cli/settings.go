package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/eartrumpet-io/eartrumpet/internal/config"
	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show settings",
	Long: `Show the settings stored in settings.yaml.

Panel commands are edited in the file itself; use "settings path" to find it.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Keys:
  locale        BCP 47 language tag, empty for the system language
  feedback_url  page opened by "Send feedback"
  log.file      also write logs to the logs directory (true/false)
  log.verbose   log every tray command (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of settings.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalSettingsFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	locale := settings.Locale
	if locale == "" {
		locale = "(system)"
	}
	rows := [][2]string{
		{"locale", locale},
		{"feedback_url", settings.FeedbackURL},
		{"log.file", strconv.FormatBool(settings.Log.File)},
		{"log.verbose", strconv.FormatBool(settings.Log.Verbose)},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s %s\n", styleLabel.Render(fmt.Sprintf("%-13s", row[0])), styleValue.Render(row[1]))
	}

	panels := []struct {
		key  string
		argv []string
	}{
		{"panels.flyout", settings.Panels.Flyout},
		{"panels.mixer", settings.Panels.Mixer},
		{"panels.legacy_mixer", settings.Panels.LegacyMixer},
		{"panels.playback_devices", settings.Panels.PlaybackDevices},
		{"panels.recording_devices", settings.Panels.RecordingDevices},
		{"panels.sounds_control_panel", settings.Panels.SoundsControlPanel},
	}
	for _, p := range panels {
		if len(p.argv) > 0 {
			fmt.Fprintf(out, "%s %s\n", styleLabel.Render(p.key), styleValue.Render(strings.Join(p.argv, " ")))
		}
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(fmt.Sprintf("%s updated.", args[0])))
	if args[0] == "locale" {
		fmt.Fprintln(cmd.OutOrStdout(), styleHint.Render("Restart EarTrumpet to apply the new language."))
	}
	return nil
}

// applySetting sets key to value on settings.
func applySetting(settings *models.Settings, key, value string) error {
	switch key {
	case "locale":
		if value != "" {
			if _, err := language.Parse(value); err != nil {
				return fmt.Errorf("invalid locale %q: %w", value, err)
			}
		}
		settings.Locale = value
	case "feedback_url":
		if value == "" {
			value = models.DefaultFeedbackURL
		}
		settings.FeedbackURL = value
	case "log.file", "log.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q (expected true or false)", key, value)
		}
		if key == "log.file" {
			settings.Log.File = b
		} else {
			settings.Log.Verbose = b
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
