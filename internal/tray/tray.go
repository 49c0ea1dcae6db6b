package tray

import (
	"fmt"
	"slices"
	"sync"
	"unicode/utf16"

	"github.com/eartrumpet-io/eartrumpet/internal/audio"
	"github.com/eartrumpet-io/eartrumpet/internal/locale"
	"github.com/eartrumpet-io/eartrumpet/internal/shell"
)

const (
	// MaxToolTipLength is the longest tooltip the notification area accepts
	// ("less than 64 chars"), in UTF-16 code units.
	MaxToolTipLength = 63

	// worstCasePrefix sizes the name budget so that a later volume change
	// can never push the tooltip over the limit.
	worstCasePrefix = "EarTrumpet: 100% - "
)

// Controller owns the tray icon. All methods must be called on the shell's
// UI thread.
type Controller struct {
	manager audio.Manager
	device  audio.DefaultDevice
	view    ViewModel
	bundle  *locale.Bundle
	shell   shell.Shell
	icon    shell.Icon

	cancel    []func()
	closeOnce sync.Once
}

// New creates the tray icon, shows it and starts following the default
// device and the view-model's icon. Register Close as an exit hook.
func New(manager audio.Manager, view ViewModel, bundle *locale.Bundle, sh shell.Shell) *Controller {
	c := &Controller{
		manager: manager,
		device:  manager.DefaultDevice(),
		view:    view,
		bundle:  bundle,
		shell:   sh,
	}

	c.cancel = append(c.cancel,
		c.device.Changed().Subscribe(c.updateToolTip),
		view.IconChanged().Subscribe(c.updateIcon),
	)

	c.icon = sh.NewIcon(c.HandleClick)
	c.icon.SetImage(view.TrayIcon())
	c.updateToolTip()
	c.icon.SetVisible(true)
	return c
}

// Close hides and releases the tray icon. Only the first call has an effect.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		for _, cancel := range c.cancel {
			cancel()
		}
		c.icon.SetVisible(false)
		c.icon.Dispose()
	})
}

// HandleClick dispatches a click on the tray icon.
func (c *Controller) HandleClick(ev shell.ClickEvent) {
	switch ev.Button {
	case shell.ButtonLeft:
		c.view.OpenFlyout()
	case shell.ButtonRight:
		c.shell.ShowMenu(c.BuildMenu(), ev.Position)
	case shell.ButtonMiddle:
		c.device.SetMuted(!c.device.IsMuted())
	}
}

// ToolTip returns the tooltip text for the current default device.
func (c *Controller) ToolTip() string {
	return ToolTipText(c.device, c.bundle)
}

func (c *Controller) updateToolTip() {
	c.icon.SetToolTip(c.ToolTip())
}

func (c *Controller) updateIcon() {
	c.icon.SetImage(c.view.TrayIcon())
}

// ToolTipText formats the tooltip for device.
func ToolTipText(device audio.DefaultDevice, bundle *locale.Bundle) string {
	if !device.IsDevicePresent() {
		return bundle.NoDeviceTrayText
	}
	budget := max(0, MaxToolTipLength-len(worstCasePrefix))
	name := truncateUTF16(device.DisplayName(), budget)
	return fmt.Sprintf("EarTrumpet: %d%% - %s", audio.ToVolumeInt(device.Volume()), name)
}

// truncateUTF16 cuts s to at most n UTF-16 code units without splitting a
// surrogate pair.
func truncateUTF16(s string, n int) string {
	units := 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1 // invalid UTF-8 is encoded as U+FFFD
		}
		if units+w > n {
			return s[:i]
		}
		units += w
	}
	return s
}

// BuildMenu builds a fresh context menu from the current device list.
func (c *Controller) BuildMenu() *shell.Menu {
	m := &shell.Menu{
		RTL:      c.bundle.RTL,
		OnOpened: onMenuOpened,
	}

	devices := c.manager.Devices()
	col := c.bundle.Collator()
	slices.SortStableFunc(devices, func(a, b audio.Device) int {
		return col.CompareString(a.DisplayName(), b.DisplayName())
	})

	if len(devices) == 0 {
		m.Items = append(m.Items, shell.MenuItem{
			Kind:    shell.KindPlaceholder,
			Label:   c.bundle.ContextMenuNoDevices,
			Enabled: false,
		})
	} else {
		defaultID := c.device.ID()
		present := c.device.IsDevicePresent()
		for _, device := range devices {
			m.Items = append(m.Items, shell.MenuItem{
				Kind:     shell.KindDevice,
				Label:    device.DisplayName(),
				DeviceID: device.ID(),
				Enabled:  true,
				Checked:  present && device.ID() == defaultID,
				Action:   func() { c.view.ChangeDevice(device) },
			})
		}
	}

	s := c.bundle.Strings
	m.Items = append(m.Items,
		separator(),
		static(shell.ItemOpenMixer, s.FullWindowTitleText, c.view.OpenMixer),
		static(shell.ItemOpenLegacyMixer, s.LegacyVolumeMixerText, c.view.OpenLegacyMixer),
		separator(),
		static(shell.ItemPlaybackDevices, s.PlaybackDevicesText, c.view.OpenPlaybackDevices),
		static(shell.ItemRecordingDevices, s.RecordingDevicesText, c.view.OpenRecordingDevices),
		static(shell.ItemSoundsControlPanel, s.SoundsControlPanelText, c.view.OpenSoundsControlPanel),
		separator(),
		static(shell.ItemSettings, s.SettingsWindowText, c.view.OpenSettings),
		static(shell.ItemFeedback, s.ContextMenuSendFeedback, c.view.OpenFeedbackHub),
		static(shell.ItemExit, s.ContextMenuExitTitle, c.view.Exit),
	)
	return m
}

// onMenuOpened makes repeated opens instant and keeps keyboard focus on
// the menu.
func onMenuOpened(w shell.MenuWindow) {
	w.SetForeground()
	w.Focus()
	w.DisableAnimation()
}

func separator() shell.MenuItem {
	return shell.MenuItem{Kind: shell.KindSeparator}
}

func static(id shell.ItemID, label string, action func()) shell.MenuItem {
	return shell.MenuItem{
		Kind:    shell.KindStatic,
		ID:      id,
		Label:   label,
		Enabled: true,
		Action:  action,
	}
}
