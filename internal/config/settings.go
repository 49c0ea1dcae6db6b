package config

import (
	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

// LoadSettings loads the global settings from settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if settings.FeedbackURL == "" {
		settings.FeedbackURL = models.DefaultFeedbackURL
	}
	return settings, nil
}

// SaveSettings saves the global settings to settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}
