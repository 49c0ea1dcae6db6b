// Package tray keeps the notification-area icon in sync with the default
// audio device and turns clicks on it into view-model commands.
package tray

import (
	"github.com/eartrumpet-io/eartrumpet/internal/audio"
	"github.com/eartrumpet-io/eartrumpet/internal/event"
)

// ViewModel provides the tray icon image and the commands the tray can run.
type ViewModel interface {
	TrayIcon() []byte
	IconChanged() *event.Signal

	OpenFlyout()
	OpenMixer()
	OpenLegacyMixer()
	OpenPlaybackDevices()
	OpenRecordingDevices()
	OpenSoundsControlPanel()
	OpenSettings()
	OpenFeedbackHub()
	Exit()
	ChangeDevice(device audio.Device)
}
