//go:build !windows

package shell

import (
	"log"
	"sync"

	"github.com/getlantern/systray"
)

const maxDeviceSlots = 16

// staticOrder is the fixed part of the menu, separators included.
var staticOrder = []ItemID{
	ItemNone, // separator
	ItemOpenMixer,
	ItemOpenLegacyMixer,
	ItemNone,
	ItemPlaybackDevices,
	ItemRecordingDevices,
	ItemSoundsControlPanel,
	ItemNone,
	ItemSettings,
	ItemFeedback,
	ItemExit,
}

// systrayShell renders menus into a pre-allocated systray menu. The host
// opens that menu itself, so Invalidate re-renders it whenever its contents
// may have changed.
//
// systray delivers callbacks on its own goroutines; a dispatcher goroutine
// serializes them and acts as the UI thread.
type systrayShell struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
	quit   sync.Once

	// UI thread only.
	icon    *systrayIcon
	slots   [maxDeviceSlots]*systray.MenuItem
	statics map[ItemID]*systray.MenuItem
	actions map[*systray.MenuItem]func()
}

// New returns the systray shell.
func New() Shell {
	return &systrayShell{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		statics: make(map[ItemID]*systray.MenuItem),
		actions: make(map[*systray.MenuItem]func()),
	}
}

func (s *systrayShell) Run(onReady, onExit func()) error {
	go s.dispatch()

	systray.Run(func() {
		s.buildMenu()
		s.Post(func() {
			if onReady != nil {
				onReady()
			}
			s.Invalidate()
		})
	}, func() {
		finished := make(chan struct{})
		s.enqueue(func() {
			if onExit != nil {
				onExit()
			}
			close(finished)
		})
		<-finished
		close(s.done)
	})
	return nil
}

func (s *systrayShell) Quit() {
	s.quit.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		systray.Quit()
	})
}

func (s *systrayShell) Post(fn func()) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.enqueue(fn)
}

func (s *systrayShell) enqueue(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *systrayShell) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			fn := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			fn()
		}
	}
}

// buildMenu pre-allocates device slots (hidden by default) and the fixed items.
func (s *systrayShell) buildMenu() {
	for i := range s.slots {
		s.slots[i] = systray.AddMenuItemCheckbox("", "", false)
		s.slots[i].Hide()
		s.watch(s.slots[i])
	}
	for _, id := range staticOrder {
		if id == ItemNone {
			systray.AddSeparator()
			continue
		}
		item := systray.AddMenuItem(string(id), "")
		s.statics[id] = item
		s.watch(item)
	}
}

func (s *systrayShell) watch(item *systray.MenuItem) {
	go func() {
		for {
			select {
			case <-s.done:
				return
			case <-item.ClickedCh:
				s.Post(func() {
					if action, ok := s.actions[item]; ok {
						action()
					}
				})
			}
		}
	}()
}

func (s *systrayShell) NewIcon(onClick func(ClickEvent)) Icon {
	s.icon = &systrayIcon{onClick: onClick}
	return s.icon
}

// Invalidate re-renders the menu by replaying a right click on the icon.
func (s *systrayShell) Invalidate() {
	if s.icon == nil || s.icon.disposed || s.icon.onClick == nil {
		return
	}
	s.icon.onClick(ClickEvent{Button: ButtonRight})
}

// ShowMenu renders m into the pre-allocated items. The host decides where
// the menu appears, so pt is unused.
func (s *systrayShell) ShowMenu(m *Menu, _ Point) {
	if m.OnOpened != nil {
		m.OnOpened(hostMenuWindow{})
	}
	s.actions = make(map[*systray.MenuItem]func())

	slot := 0
	for _, item := range m.Items {
		switch item.Kind {
		case KindDevice, KindPlaceholder:
			if slot >= len(s.slots) {
				log.Printf("[shell] Menu has more than %d devices, dropping %q", maxDeviceSlots, item.Label)
				continue
			}
			s.renderItem(s.slots[slot], item)
			s.slots[slot].Show()
			slot++
		case KindStatic:
			if mi, ok := s.statics[item.ID]; ok {
				s.renderItem(mi, item)
			}
		}
	}
	for ; slot < len(s.slots); slot++ {
		s.slots[slot].Hide()
	}
}

func (s *systrayShell) renderItem(mi *systray.MenuItem, item MenuItem) {
	mi.SetTitle(item.Label)
	if item.Checked {
		mi.Check()
	} else {
		mi.Uncheck()
	}
	if item.Enabled {
		mi.Enable()
	} else {
		mi.Disable()
	}
	if item.Enabled && item.Action != nil {
		s.actions[mi] = item.Action
	}
}

// hostMenuWindow stands in for a menu window the host owns; focus and
// animation are not ours to change.
type hostMenuWindow struct{}

func (hostMenuWindow) SetForeground()    {}
func (hostMenuWindow) Focus()            {}
func (hostMenuWindow) DisableAnimation() {}

type systrayIcon struct {
	onClick  func(ClickEvent)
	visible  bool
	disposed bool
}

func (i *systrayIcon) SetImage(png []byte) {
	if i.disposed {
		return
	}
	systray.SetIcon(png)
}

func (i *systrayIcon) SetToolTip(text string) {
	if i.disposed {
		return
	}
	systray.SetTooltip(text)
}

// SetVisible only tracks state: systray shows its icon for as long as it runs.
func (i *systrayIcon) SetVisible(visible bool) {
	if i.disposed {
		return
	}
	i.visible = visible
}

func (i *systrayIcon) Dispose() {
	i.visible = false
	i.disposed = true
}
