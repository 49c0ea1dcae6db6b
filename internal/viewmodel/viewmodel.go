// Package viewmodel holds the tray's presentation state: which icon to show
// and what each menu command does.
package viewmodel

import (
	"log"

	"github.com/eartrumpet-io/eartrumpet/internal/audio"
	"github.com/eartrumpet-io/eartrumpet/internal/event"
	"github.com/eartrumpet-io/eartrumpet/internal/icons"
	"github.com/eartrumpet-io/eartrumpet/internal/launcher"
)

// Options configures a TrayViewModel.
type Options struct {
	Manager  audio.Manager
	Launcher launcher.Launcher
	Panels   launcher.Panels

	// SettingsPath is opened by the Settings command.
	SettingsPath string
	FeedbackURL  string

	// Exit shuts the application down.
	Exit func()

	// Verbose logs every command.
	Verbose bool
}

// TrayViewModel implements tray.ViewModel. It must be used on the UI thread.
type TrayViewModel struct {
	opts        Options
	device      audio.DefaultDevice
	kind        icons.Kind
	iconChanged event.Signal
	cancel      func()
}

// New creates the view-model and starts following the default device.
func New(opts Options) *TrayViewModel {
	v := &TrayViewModel{
		opts:   opts,
		device: opts.Manager.DefaultDevice(),
	}
	v.kind = v.currentKind()
	v.cancel = v.device.Changed().Subscribe(v.refresh)
	return v
}

// Close stops following the default device.
func (v *TrayViewModel) Close() {
	v.cancel()
}

// Kind returns the icon kind currently shown.
func (v *TrayViewModel) Kind() icons.Kind {
	return v.kind
}

// TrayIcon returns the PNG for the current icon.
func (v *TrayViewModel) TrayIcon() []byte {
	return icons.PNG(v.kind)
}

// IconChanged fires when TrayIcon would return a different image.
func (v *TrayViewModel) IconChanged() *event.Signal {
	return &v.iconChanged
}

// Reconfigure applies reloaded panel commands and feedback URL.
func (v *TrayViewModel) Reconfigure(panels launcher.Panels, feedbackURL string) {
	v.opts.Panels = panels
	v.opts.FeedbackURL = feedbackURL
}

func (v *TrayViewModel) currentKind() icons.Kind {
	return icons.KindFor(v.device.IsDevicePresent(), v.device.IsMuted(), audio.ToVolumeInt(v.device.Volume()))
}

func (v *TrayViewModel) refresh() {
	kind := v.currentKind()
	if kind == v.kind {
		return
	}
	if v.opts.Verbose {
		log.Printf("[viewmodel] Icon %s -> %s", v.kind, kind)
	}
	v.kind = kind
	v.iconChanged.Emit()
}

func (v *TrayViewModel) OpenFlyout()      { v.openPanel(launcher.PanelFlyout) }
func (v *TrayViewModel) OpenMixer()       { v.openPanel(launcher.PanelMixer) }
func (v *TrayViewModel) OpenLegacyMixer() { v.openPanel(launcher.PanelLegacyMixer) }

func (v *TrayViewModel) OpenPlaybackDevices()  { v.openPanel(launcher.PanelPlaybackDevices) }
func (v *TrayViewModel) OpenRecordingDevices() { v.openPanel(launcher.PanelRecordingDevices) }

func (v *TrayViewModel) OpenSoundsControlPanel() { v.openPanel(launcher.PanelSoundsControlPanel) }

// OpenSettings opens the settings file in the default editor.
func (v *TrayViewModel) OpenSettings() {
	v.trace("settings")
	if v.opts.SettingsPath == "" {
		return
	}
	if err := v.opts.Launcher.OpenFile(v.opts.SettingsPath); err != nil {
		log.Printf("[viewmodel] Failed to open settings: %v", err)
	}
}

// OpenFeedbackHub opens the feedback page.
func (v *TrayViewModel) OpenFeedbackHub() {
	v.trace("feedback")
	if v.opts.FeedbackURL == "" {
		return
	}
	if err := v.opts.Launcher.OpenURL(v.opts.FeedbackURL); err != nil {
		log.Printf("[viewmodel] Failed to open feedback page: %v", err)
	}
}

// Exit shuts the application down.
func (v *TrayViewModel) Exit() {
	v.trace("exit")
	if v.opts.Exit != nil {
		v.opts.Exit()
	}
}

// ChangeDevice makes device the default playback device.
func (v *TrayViewModel) ChangeDevice(device audio.Device) {
	v.trace("change device " + device.ID())
	if err := v.opts.Manager.SetDefault(device.ID()); err != nil {
		log.Printf("[viewmodel] Failed to change device to %q: %v", device.DisplayName(), err)
	}
}

func (v *TrayViewModel) openPanel(p launcher.Panel) {
	v.trace(p.String())
	if err := launcher.Open(v.opts.Launcher, v.opts.Panels[p]); err != nil {
		log.Printf("[viewmodel] Failed to open %s: %v", p, err)
	}
}

func (v *TrayViewModel) trace(command string) {
	if v.opts.Verbose {
		log.Printf("[viewmodel] Command: %s", command)
	}
}
