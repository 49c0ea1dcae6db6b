// Package audio models playback endpoints and the virtual default device
// the tray follows.
package audio

import (
	"errors"
	"math"

	"github.com/eartrumpet-io/eartrumpet/internal/event"
)

// ErrUnknownDevice is returned when a device ID is not in the current set.
var ErrUnknownDevice = errors.New("unknown audio device")

// Device is a playback endpoint as shown in the device list.
type Device interface {
	ID() string
	DisplayName() string
}

// DefaultDevice follows whichever endpoint is currently the default.
// DisplayName, ID and Volume are only meaningful while IsDevicePresent is true.
type DefaultDevice interface {
	IsDevicePresent() bool
	ID() string
	DisplayName() string
	Volume() float32
	IsMuted() bool
	SetMuted(muted bool)

	// Changed fires whenever presence, identity, name, volume or mute changes.
	Changed() *event.Signal
}

// Manager owns the set of known endpoints.
type Manager interface {
	DefaultDevice() DefaultDevice
	Devices() []Device
	SetDefault(id string) error

	// DevicesChanged fires when endpoints are added, removed or renamed.
	DevicesChanged() *event.Signal
}

// ToVolumeInt converts a scalar volume (0.0 - 1.0) to a whole percentage.
func ToVolumeInt(v float32) int {
	n := int(math.Round(float64(v) * 100))
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	}
	return n
}
