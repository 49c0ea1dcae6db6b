package tray

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/eartrumpet-io/eartrumpet/internal/audio"
	"github.com/eartrumpet-io/eartrumpet/internal/locale"
	"github.com/eartrumpet-io/eartrumpet/internal/models"
	"github.com/eartrumpet-io/eartrumpet/internal/shell"
)

func profile(defaultID string, entries ...models.DeviceEntry) *models.DeviceProfile {
	p := models.NewDeviceProfile()
	p.Default = defaultID
	p.Devices = append(p.Devices, entries...)
	return p
}

func threeDevices() *models.DeviceProfile {
	return profile("hp",
		models.DeviceEntry{ID: "spk", Name: "Speakers", Volume: 0.5},
		models.DeviceEntry{ID: "hp", Name: "headphones", Volume: 0.3},
		models.DeviceEntry{ID: "mon", Name: "Monitor Audio", Volume: 1},
	)
}

type fixture struct {
	manager *audio.MemoryManager
	view    *fakeView
	shell   *fakeShell
	ctrl    *Controller
	icon    *fakeIcon
}

func newFixture(t *testing.T, p *models.DeviceProfile) *fixture {
	t.Helper()
	f := &fixture{
		manager: audio.NewMemoryManager(p),
		view:    newFakeView(),
		shell:   &fakeShell{},
	}
	f.ctrl = New(f.manager, f.view, locale.Resolve("en"), f.shell)
	if len(f.shell.icons) != 1 {
		t.Fatalf("New created %d icons, want 1", len(f.shell.icons))
	}
	f.icon = f.shell.icons[0]
	return f
}

func (f *fixture) rightClick(t *testing.T) *shell.Menu {
	t.Helper()
	before := len(f.shell.shown)
	f.icon.onClick(shell.ClickEvent{Button: shell.ButtonRight, Position: shell.Point{X: 10, Y: 20}})
	if len(f.shell.shown) != before+1 {
		t.Fatalf("right click showed %d menus, want 1", len(f.shell.shown)-before)
	}
	return f.shell.shown[len(f.shell.shown)-1].menu
}

func TestNewShowsIcon(t *testing.T) {
	f := newFixture(t, threeDevices())

	if !f.icon.visible {
		t.Error("icon not visible after New")
	}
	if !bytes.Equal(f.icon.image, []byte("icon-a")) {
		t.Errorf("image = %q, want view-model icon", f.icon.image)
	}
	if f.icon.toolTip != "EarTrumpet: 30% - headphones" {
		t.Errorf("toolTip = %q", f.icon.toolTip)
	}
}

func TestToolTipText(t *testing.T) {
	bundle := locale.Resolve("en")
	long := strings.Repeat("x", 100)

	tests := []struct {
		name   string
		device *fakeDevice
		want   string
	}{
		{
			name:   "absent",
			device: &fakeDevice{present: false, name: "Speakers", volume: 0.5, muted: true},
			want:   bundle.NoDeviceTrayText,
		},
		{
			name:   "present",
			device: &fakeDevice{present: true, name: "Speakers", volume: 0.42},
			want:   "EarTrumpet: 42% - Speakers",
		},
		{
			name:   "muted still shows volume",
			device: &fakeDevice{present: true, name: "Speakers", volume: 0.42, muted: true},
			want:   "EarTrumpet: 42% - Speakers",
		},
		{
			name:   "long name cut to worst-case budget",
			device: &fakeDevice{present: true, name: long, volume: 0.05},
			want:   "EarTrumpet: 5% - " + strings.Repeat("x", 44),
		},
		{
			name:   "empty name",
			device: &fakeDevice{present: true, name: "", volume: 1},
			want:   "EarTrumpet: 100% - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToolTipText(tt.device, bundle); got != tt.want {
				t.Errorf("ToolTipText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToolTipNeverExceedsLimit(t *testing.T) {
	bundle := locale.Resolve("en")
	names := []string{"", "a", strings.Repeat("n", 44), strings.Repeat("n", 45), strings.Repeat("n", 500),
		strings.Repeat("é", 80), strings.Repeat("🎧", 40), "ab" + strings.Repeat("🔊", 30)}

	for v := 0; v <= 100; v++ {
		for _, name := range names {
			d := &fakeDevice{present: true, name: name, volume: float32(v) / 100}
			text := ToolTipText(d, bundle)
			if n := len(utf16.Encode([]rune(text))); n > MaxToolTipLength {
				t.Fatalf("volume %d, name len %d: tooltip is %d UTF-16 units: %q", v, len(name), n, text)
			}
		}
	}
}

func TestTruncateUTF16KeepsSurrogatePairs(t *testing.T) {
	// Each emoji is two UTF-16 units; a budget of 3 fits only one.
	if got := truncateUTF16("🎧🎧", 3); got != "🎧" {
		t.Errorf("truncateUTF16 = %q, want one emoji", got)
	}
	if got := truncateUTF16("abc", 0); got != "" {
		t.Errorf("truncateUTF16(abc, 0) = %q, want empty", got)
	}
	if got := truncateUTF16("abc", 10); got != "abc" {
		t.Errorf("truncateUTF16(abc, 10) = %q", got)
	}
}

func TestToolTipFollowsDevice(t *testing.T) {
	f := newFixture(t, threeDevices())

	if err := f.manager.SetDefault("spk"); err != nil {
		t.Fatal(err)
	}
	if f.icon.toolTip != "EarTrumpet: 50% - Speakers" {
		t.Errorf("after SetDefault toolTip = %q", f.icon.toolTip)
	}

	f.manager.Apply(models.NewDeviceProfile())
	if f.icon.toolTip != locale.Resolve("en").NoDeviceTrayText {
		t.Errorf("after removing devices toolTip = %q", f.icon.toolTip)
	}
}

func TestIconFollowsViewModel(t *testing.T) {
	f := newFixture(t, threeDevices())

	f.view.setIcon([]byte("icon-b"))

	if !bytes.Equal(f.icon.image, []byte("icon-b")) {
		t.Errorf("image = %q, want icon-b", f.icon.image)
	}
}

func TestMenuEmptyDevices(t *testing.T) {
	f := newFixture(t, models.NewDeviceProfile())
	m := f.rightClick(t)

	first := m.Items[0]
	if first.Kind != shell.KindPlaceholder || first.Enabled || first.Label != "No playback devices" {
		t.Errorf("first item = %+v, want disabled placeholder", first)
	}
	placeholders := 0
	for _, item := range m.Items {
		if item.Kind == shell.KindDevice {
			t.Errorf("unexpected device item %+v", item)
		}
		if item.Kind == shell.KindPlaceholder {
			placeholders++
		}
	}
	if placeholders != 1 {
		t.Errorf("placeholders = %d, want 1", placeholders)
	}
}

func TestMenuDevicesSortedAndChecked(t *testing.T) {
	f := newFixture(t, threeDevices())
	m := f.rightClick(t)

	var labels []string
	checked := 0
	for _, item := range m.Items {
		if item.Kind != shell.KindDevice {
			continue
		}
		labels = append(labels, item.Label)
		if !item.Enabled {
			t.Errorf("device %q disabled", item.Label)
		}
		if item.Checked {
			checked++
			if item.DeviceID != "hp" {
				t.Errorf("checked device = %q, want hp", item.DeviceID)
			}
		}
	}

	want := []string{"headphones", "Monitor Audio", "Speakers"}
	if strings.Join(labels, "|") != strings.Join(want, "|") {
		t.Errorf("device labels = %v, want %v", labels, want)
	}
	if checked != 1 {
		t.Errorf("checked = %d, want 1", checked)
	}
}

func TestMenuStaticSection(t *testing.T) {
	want := []shell.ItemID{
		"|", shell.ItemOpenMixer, shell.ItemOpenLegacyMixer,
		"|", shell.ItemPlaybackDevices, shell.ItemRecordingDevices, shell.ItemSoundsControlPanel,
		"|", shell.ItemSettings, shell.ItemFeedback, shell.ItemExit,
	}

	for name, p := range map[string]*models.DeviceProfile{
		"empty":   models.NewDeviceProfile(),
		"devices": threeDevices(),
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, p)
			m := f.rightClick(t)

			var got []shell.ItemID
			for _, item := range m.Items {
				switch item.Kind {
				case shell.KindSeparator:
					got = append(got, "|")
				case shell.KindStatic:
					if !item.Enabled || item.Action == nil || item.Label == "" {
						t.Errorf("static item %q not actionable: %+v", item.ID, item)
					}
					got = append(got, item.ID)
				}
			}
			if len(got) != len(want) {
				t.Fatalf("static section = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("static section = %v, want %v", got, want)
				}
			}
		})
	}
}

func TestMenuActions(t *testing.T) {
	f := newFixture(t, threeDevices())
	m := f.rightClick(t)

	want := map[shell.ItemID]string{
		shell.ItemOpenMixer:          "mixer",
		shell.ItemOpenLegacyMixer:    "legacy-mixer",
		shell.ItemPlaybackDevices:    "playback",
		shell.ItemRecordingDevices:   "recording",
		shell.ItemSoundsControlPanel: "sounds",
		shell.ItemSettings:           "settings",
		shell.ItemFeedback:           "feedback",
		shell.ItemExit:               "exit",
	}
	for _, item := range m.Items {
		if item.Kind != shell.KindStatic {
			continue
		}
		item.Action()
		if f.view.calls[want[item.ID]] != 1 {
			t.Errorf("%s: command %q called %d times", item.ID, want[item.ID], f.view.calls[want[item.ID]])
		}
	}

	for _, item := range m.Items {
		if item.Kind == shell.KindDevice && item.DeviceID == "mon" {
			item.Action()
		}
	}
	if len(f.view.changed) != 1 || f.view.changed[0].ID() != "mon" {
		t.Errorf("ChangeDevice got %v, want mon", f.view.changed)
	}
}

func TestMenuReflectsOpenTimeState(t *testing.T) {
	f := newFixture(t, models.NewDeviceProfile())

	f.manager.Apply(profile("usb", models.DeviceEntry{ID: "usb", Name: "USB DAC", Volume: 0.1}))
	m := f.rightClick(t)

	if m.Items[0].Kind != shell.KindDevice || m.Items[0].Label != "USB DAC" || !m.Items[0].Checked {
		t.Errorf("first item = %+v, want checked USB DAC", m.Items[0])
	}
}

func TestMenuOpenedAndLayout(t *testing.T) {
	f := newFixture(t, threeDevices())
	m := f.rightClick(t)

	if m.RTL {
		t.Error("English menu is RTL")
	}
	if at := f.shell.shown[0].at; at != (shell.Point{X: 10, Y: 20}) {
		t.Errorf("menu shown at %v, want pointer position", at)
	}

	w := &fakeWindow{}
	m.OnOpened(w)
	if strings.Join(w.calls, ",") != "foreground,focus,no-animation" {
		t.Errorf("OnOpened calls = %v", w.calls)
	}

	rtl := New(audio.NewMemoryManager(threeDevices()), newFakeView(), locale.Resolve("he"), f.shell)
	if !rtl.BuildMenu().RTL {
		t.Error("Hebrew menu is not RTL")
	}
}

func TestClickDispatch(t *testing.T) {
	tests := []struct {
		name      string
		button    shell.Button
		flyout    int
		menus     int
		wantMuted bool
	}{
		{"left opens flyout", shell.ButtonLeft, 1, 0, false},
		{"right opens menu", shell.ButtonRight, 0, 1, false},
		{"middle toggles mute", shell.ButtonMiddle, 0, 0, true},
		{"x1 ignored", shell.ButtonX1, 0, 0, false},
		{"none ignored", shell.ButtonNone, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, threeDevices())
			f.icon.onClick(shell.ClickEvent{Button: tt.button})

			if f.view.calls["flyout"] != tt.flyout {
				t.Errorf("flyout calls = %d, want %d", f.view.calls["flyout"], tt.flyout)
			}
			if len(f.shell.shown) != tt.menus {
				t.Errorf("menus shown = %d, want %d", len(f.shell.shown), tt.menus)
			}
			if muted := f.manager.DefaultDevice().IsMuted(); muted != tt.wantMuted {
				t.Errorf("muted = %v, want %v", muted, tt.wantMuted)
			}
		})
	}
}

func TestMiddleClickTogglesEachTime(t *testing.T) {
	f := newFixture(t, threeDevices())
	dev := f.manager.DefaultDevice()

	for i, want := range []bool{true, false, true} {
		f.icon.onClick(shell.ClickEvent{Button: shell.ButtonMiddle})
		if dev.IsMuted() != want {
			t.Fatalf("click %d: muted = %v, want %v", i+1, dev.IsMuted(), want)
		}
	}
	if f.view.calls["flyout"] != 0 || len(f.shell.shown) != 0 {
		t.Error("middle click opened flyout or menu")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFixture(t, threeDevices())

	f.ctrl.Close()
	if f.icon.visible {
		t.Error("icon visible after Close")
	}
	f.ctrl.Close()

	if f.icon.disposed != 1 {
		t.Errorf("Dispose called %d times, want 1", f.icon.disposed)
	}
	if f.icon.visible {
		t.Error("icon visible after second Close")
	}

	// Subscriptions are gone: later changes do not touch the icon.
	tip := f.icon.toolTip
	f.manager.DefaultDevice().SetMuted(true)
	_ = f.manager.SetDefault("spk")
	f.view.setIcon([]byte("icon-c"))
	if f.icon.toolTip != tip || bytes.Equal(f.icon.image, []byte("icon-c")) {
		t.Error("icon updated after Close")
	}
}
