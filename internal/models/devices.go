package models

import "strings"

// DeviceEntry describes one playback endpoint in the device profile.
type DeviceEntry struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Volume float32 `yaml:"volume"` // 0.0 - 1.0
	Muted  bool    `yaml:"muted"`
}

// DeviceProfile is the set of known playback endpoints and the current default.
// This corresponds to ~/.eartrumpet/devices.yaml.
type DeviceProfile struct {
	Version int           `yaml:"version"`
	Default string        `yaml:"default"` // ID of the default endpoint, empty = none
	Devices []DeviceEntry `yaml:"devices"`
}

// NewDeviceProfile creates an empty profile.
func NewDeviceProfile() *DeviceProfile {
	return &DeviceProfile{
		Version: 1,
		Devices: []DeviceEntry{},
	}
}

// Find returns the entry whose ID matches key, or failing that the first
// entry whose name matches key case-insensitively.
func (p *DeviceProfile) Find(key string) *DeviceEntry {
	for i := range p.Devices {
		if p.Devices[i].ID == key {
			return &p.Devices[i]
		}
	}
	for i := range p.Devices {
		if strings.EqualFold(p.Devices[i].Name, key) {
			return &p.Devices[i]
		}
	}
	return nil
}

// DefaultEntry returns the entry for the default endpoint, or nil.
func (p *DeviceProfile) DefaultEntry() *DeviceEntry {
	if p.Default == "" {
		return nil
	}
	for i := range p.Devices {
		if p.Devices[i].ID == p.Default {
			return &p.Devices[i]
		}
	}
	return nil
}
