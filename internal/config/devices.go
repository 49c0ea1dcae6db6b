package config

import (
	"github.com/google/uuid"

	"github.com/eartrumpet-io/eartrumpet/internal/models"
)

// LoadDeviceProfile loads the device profile from devices.yaml.
// If the file doesn't exist, returns an empty profile. Entries without an
// id are given a random one and the file is rewritten so the ids stay
// stable across loads.
func LoadDeviceProfile() (*models.DeviceProfile, error) {
	path, err := GlobalDevicesFile()
	if err != nil {
		return nil, err
	}
	profile, err := LoadYAMLOrDefault(path, models.NewDeviceProfile)
	if err != nil {
		return nil, err
	}
	if assignDeviceIDs(profile) {
		if err := SaveYAML(path, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// SaveDeviceProfile saves the device profile to devices.yaml.
func SaveDeviceProfile(profile *models.DeviceProfile) error {
	path, err := GlobalDevicesFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, profile)
}

// assignDeviceIDs fills in missing ids and reports whether any were added.
func assignDeviceIDs(profile *models.DeviceProfile) bool {
	added := false
	for i := range profile.Devices {
		if profile.Devices[i].ID == "" {
			profile.Devices[i].ID = uuid.New().String()
			added = true
		}
	}
	return added
}
