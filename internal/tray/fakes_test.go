package tray

import (
	"github.com/eartrumpet-io/eartrumpet/internal/audio"
	"github.com/eartrumpet-io/eartrumpet/internal/event"
	"github.com/eartrumpet-io/eartrumpet/internal/shell"
)

type fakeIcon struct {
	image    []byte
	toolTip  string
	visible  bool
	disposed int
	onClick  func(shell.ClickEvent)
}

func (i *fakeIcon) SetImage(png []byte) {
	if i.disposed == 0 {
		i.image = png
	}
}

func (i *fakeIcon) SetToolTip(text string) {
	if i.disposed == 0 {
		i.toolTip = text
	}
}

func (i *fakeIcon) SetVisible(visible bool) {
	if i.disposed == 0 {
		i.visible = visible
	}
}

func (i *fakeIcon) Dispose() { i.disposed++ }

type shownMenu struct {
	menu *shell.Menu
	at   shell.Point
}

type fakeShell struct {
	icons []*fakeIcon
	shown []shownMenu
}

func (s *fakeShell) Run(onReady, onExit func()) error {
	onReady()
	onExit()
	return nil
}

func (s *fakeShell) Quit()          {}
func (s *fakeShell) Post(fn func()) { fn() }

func (s *fakeShell) NewIcon(onClick func(shell.ClickEvent)) shell.Icon {
	icon := &fakeIcon{onClick: onClick}
	s.icons = append(s.icons, icon)
	return icon
}

func (s *fakeShell) ShowMenu(m *shell.Menu, pt shell.Point) {
	s.shown = append(s.shown, shownMenu{menu: m, at: pt})
}

type fakeView struct {
	icon        []byte
	iconChanged event.Signal

	calls   map[string]int
	changed []audio.Device
}

func newFakeView() *fakeView {
	return &fakeView{icon: []byte("icon-a"), calls: make(map[string]int)}
}

func (v *fakeView) setIcon(b []byte) {
	v.icon = b
	v.iconChanged.Emit()
}

func (v *fakeView) TrayIcon() []byte           { return v.icon }
func (v *fakeView) IconChanged() *event.Signal { return &v.iconChanged }
func (v *fakeView) OpenFlyout()                { v.calls["flyout"]++ }
func (v *fakeView) OpenMixer()                 { v.calls["mixer"]++ }
func (v *fakeView) OpenLegacyMixer()           { v.calls["legacy-mixer"]++ }
func (v *fakeView) OpenPlaybackDevices()       { v.calls["playback"]++ }
func (v *fakeView) OpenRecordingDevices()      { v.calls["recording"]++ }
func (v *fakeView) OpenSoundsControlPanel()    { v.calls["sounds"]++ }
func (v *fakeView) OpenSettings()              { v.calls["settings"]++ }
func (v *fakeView) OpenFeedbackHub()           { v.calls["feedback"]++ }
func (v *fakeView) Exit()                      { v.calls["exit"]++ }

func (v *fakeView) ChangeDevice(d audio.Device) {
	v.calls["change-device"]++
	v.changed = append(v.changed, d)
}

type fakeWindow struct {
	calls []string
}

func (w *fakeWindow) SetForeground()    { w.calls = append(w.calls, "foreground") }
func (w *fakeWindow) Focus()            { w.calls = append(w.calls, "focus") }
func (w *fakeWindow) DisableAnimation() { w.calls = append(w.calls, "no-animation") }

// fakeDevice is a DefaultDevice with directly settable state.
type fakeDevice struct {
	present bool
	id      string
	name    string
	volume  float32
	muted   bool
	changed event.Signal
}

func (d *fakeDevice) IsDevicePresent() bool  { return d.present }
func (d *fakeDevice) ID() string             { return d.id }
func (d *fakeDevice) DisplayName() string    { return d.name }
func (d *fakeDevice) Volume() float32        { return d.volume }
func (d *fakeDevice) IsMuted() bool          { return d.muted }
func (d *fakeDevice) SetMuted(m bool)        { d.muted = m }
func (d *fakeDevice) Changed() *event.Signal { return &d.changed }
