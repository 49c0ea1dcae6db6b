// Package shell is the platform layer of the tray: the notification-area
// icon, popup menus and the UI thread everything runs on.
//
// Menus are described declaratively with Menu and rendered by the platform
// backend; callers never touch toolkit objects.
package shell

// Button identifies the mouse button of a click on the tray icon.
type Button int

// Mouse buttons.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonX1
	ButtonX2
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonX1:
		return "x1"
	case ButtonX2:
		return "x2"
	}
	return "none"
}

// Point is a position in screen coordinates.
type Point struct {
	X, Y int
}

// ClickEvent is a mouse click on the tray icon.
type ClickEvent struct {
	Button   Button
	Position Point
}

// ItemKind tags a menu item variant.
type ItemKind int

// Menu item kinds.
const (
	KindDevice ItemKind = iota
	KindStatic
	KindSeparator
	KindPlaceholder
)

func (k ItemKind) String() string {
	switch k {
	case KindDevice:
		return "device"
	case KindStatic:
		return "static"
	case KindSeparator:
		return "separator"
	case KindPlaceholder:
		return "placeholder"
	}
	return "unknown"
}

// ItemID names the fixed menu entries. Device and placeholder entries use
// ItemNone.
type ItemID string

// Fixed menu entries.
const (
	ItemNone               ItemID = ""
	ItemOpenMixer          ItemID = "open-mixer"
	ItemOpenLegacyMixer    ItemID = "open-legacy-mixer"
	ItemPlaybackDevices    ItemID = "playback-devices"
	ItemRecordingDevices   ItemID = "recording-devices"
	ItemSoundsControlPanel ItemID = "sounds-control-panel"
	ItemSettings           ItemID = "settings"
	ItemFeedback           ItemID = "feedback"
	ItemExit               ItemID = "exit"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Kind    ItemKind
	ID      ItemID
	Label   string
	Enabled bool
	Checked bool

	// DeviceID is set for KindDevice entries.
	DeviceID string

	// Action runs on the UI thread when the item is activated.
	Action func()
}

// Menu is a declarative popup menu. It is built for a single showing.
type Menu struct {
	Items []MenuItem
	RTL   bool

	// OnOpened runs on the UI thread once the menu window exists and
	// before the user can interact with it.
	OnOpened func(MenuWindow)
}

// MenuWindow is the native window hosting an open popup menu.
type MenuWindow interface {
	SetForeground()
	Focus()
	DisableAnimation()
}

// Icon is the notification-area icon. Every method is a no-op once the
// icon has been disposed.
type Icon interface {
	SetImage(png []byte)
	SetToolTip(text string)
	SetVisible(visible bool)
	Dispose()
}

// Shell is a platform backend.
type Shell interface {
	// Run takes over the calling goroutine as the UI thread. onReady runs
	// on it once the shell can create icons; onExit runs after Quit.
	Run(onReady, onExit func()) error

	// Quit ends Run. It may be called from any goroutine.
	Quit()

	// Post queues fn to run on the UI thread. It may be called from any
	// goroutine; calls after Quit are dropped.
	Post(fn func())

	// NewIcon creates the tray icon. onClick runs on the UI thread.
	NewIcon(onClick func(ClickEvent)) Icon

	// ShowMenu displays m at pt.
	ShowMenu(m *Menu, pt Point)
}

// Invalidator is implemented by shells whose host opens the menu by itself
// (no right-click notification reaches us). Invalidate re-renders the menu
// from current state; call it on the UI thread after anything shown in the
// menu changes.
type Invalidator interface {
	Invalidate()
}
