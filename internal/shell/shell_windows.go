//go:build windows

package shell

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	pAppendMenu               = user32.NewProc("AppendMenuW")
	pCreateIconFromResourceEx = user32.NewProc("CreateIconFromResourceEx")
	pCreatePopupMenu          = user32.NewProc("CreatePopupMenu")
	pCreateWindowEx           = user32.NewProc("CreateWindowExW")
	pDefWindowProc            = user32.NewProc("DefWindowProcW")
	pDestroyIcon              = user32.NewProc("DestroyIcon")
	pDestroyMenu              = user32.NewProc("DestroyMenu")
	pDestroyWindow            = user32.NewProc("DestroyWindow")
	pDispatchMessage          = user32.NewProc("DispatchMessageW")
	pGetCursorPos             = user32.NewProc("GetCursorPos")
	pGetMessage               = user32.NewProc("GetMessageW")
	pPostMessage              = user32.NewProc("PostMessageW")
	pPostQuitMessage          = user32.NewProc("PostQuitMessage")
	pRegisterClassEx          = user32.NewProc("RegisterClassExW")
	pRegisterWindowMessage    = user32.NewProc("RegisterWindowMessageW")
	pSetFocus                 = user32.NewProc("SetFocus")
	pSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	pTrackPopupMenu           = user32.NewProc("TrackPopupMenu")
	pTranslateMessage         = user32.NewProc("TranslateMessage")

	pGetModuleHandle = kernel32.NewProc("GetModuleHandleW")

	pShellNotifyIcon = shell32.NewProc("Shell_NotifyIconW")
)

const (
	wmNull        = 0x0000
	wmLButtonUp   = 0x0202
	wmRButtonUp   = 0x0205
	wmMButtonUp   = 0x0208
	wmXButtonUp   = 0x020C
	wmApp         = 0x8000
	wmAppTray     = wmApp + 1 // Shell_NotifyIcon callback
	wmAppPost     = wmApp + 2 // drain the Post queue
	wmAppQuit     = wmApp + 3
	nimAdd        = 0x0
	nimModify     = 0x1
	nimDelete     = 0x2
	nifMessage    = 0x1
	nifIcon       = 0x2
	nifTip        = 0x4
	mfString      = 0x0000
	mfGrayed      = 0x0001
	mfChecked     = 0x0008
	mfSeparator   = 0x0800
	tpmRightBtn   = 0x0002
	tpmNoNotify   = 0x0080
	tpmReturnCmd  = 0x0100
	tpmNoAnim     = 0x4000
	tpmLayoutRTL  = 0x8000
	iconResVer    = 0x00030000
	maxTipLength  = 127 // szTip holds 128 UTF-16 units including the terminator
	errClassExist = 1410
)

const className = "EarTrumpetTrayWindow"

type point struct {
	X, Y int32
}

type winMsg struct {
	HWnd     windows.HWND
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

// notifyIconData is NOTIFYICONDATAW.
type notifyIconData struct {
	Size                       uint32
	Wnd                        windows.HWND
	ID, Flags, CallbackMessage uint32
	Icon                       windows.Handle
	Tip                        [128]uint16
	State, StateMask           uint32
	Info                       [256]uint16
	Timeout                    uint32
	InfoTitle                  [64]uint16
	InfoFlags                  uint32
	GuidItem                   windows.GUID
	BalloonIcon                windows.Handle
}

func (nid *notifyIconData) call(op uintptr) error {
	res, _, err := pShellNotifyIcon.Call(op, uintptr(unsafe.Pointer(nid)))
	if res == 0 {
		return err
	}
	return nil
}

// winShell drives a hidden window whose message loop is the UI thread.
type winShell struct {
	mu       sync.Mutex
	hwnd     windows.HWND
	queue    []func()
	quitting bool

	taskbarCreated uint32
	icons          map[uint32]*winIcon
	nextIconID     uint32
}

// New returns the Windows shell.
func New() Shell {
	return &winShell{icons: make(map[uint32]*winIcon)}
}

func (s *winShell) Run(onReady, onExit func()) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd, err := s.createWindow()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.hwnd = hwnd
	pending := len(s.queue) > 0
	quitting := s.quitting
	s.mu.Unlock()

	if !quitting {
		if onReady != nil {
			onReady()
		}
		if pending {
			pPostMessage.Call(uintptr(hwnd), wmAppPost, 0, 0)
		}
		s.loop()
	}

	s.mu.Lock()
	s.quitting = true
	s.queue = nil
	s.mu.Unlock()

	if onExit != nil {
		onExit()
	}
	for _, icon := range s.icons {
		icon.Dispose()
	}
	pDestroyWindow.Call(uintptr(hwnd))

	s.mu.Lock()
	s.hwnd = 0
	s.mu.Unlock()
	return nil
}

func (s *winShell) loop() {
	var m winMsg
	for {
		r, _, err := pGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			log.Printf("[shell] GetMessage failed: %v", err)
			return
		case 0:
			return
		}
		pTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		pDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (s *winShell) createWindow() (windows.HWND, error) {
	instance, _, _ := pGetModuleHandle.Call(0)
	cls, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return 0, err
	}

	wc := wndClassEx{
		WndProc:   windows.NewCallback(s.wndProc),
		Instance:  windows.Handle(instance),
		ClassName: cls,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if atom, _, err := pRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		if !errors.Is(err, syscall.Errno(errClassExist)) {
			return 0, fmt.Errorf("register window class: %w", err)
		}
	}

	hwnd, _, err := pCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(cls)),
		uintptr(unsafe.Pointer(cls)),
		0,
		0, 0, 0, 0,
		0, 0,
		instance,
		0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("create tray window: %w", err)
	}

	if name, err := windows.UTF16PtrFromString("TaskbarCreated"); err == nil {
		msg, _, _ := pRegisterWindowMessage.Call(uintptr(unsafe.Pointer(name)))
		s.taskbarCreated = uint32(msg)
	}
	return windows.HWND(hwnd), nil
}

func (s *winShell) wndProc(hwnd windows.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	// Explorer restarted: every icon has to be added again.
	if s.taskbarCreated != 0 && msg == s.taskbarCreated {
		for _, icon := range s.icons {
			icon.readd()
		}
		return 0
	}

	switch msg {
	case wmAppTray:
		s.onTrayMessage(uint32(wParam), uint32(lParam)&0xFFFF)
		return 0
	case wmAppPost:
		s.drain()
		return 0
	case wmAppQuit:
		pPostQuitMessage.Call(0)
		return 0
	}
	r, _, _ := pDefWindowProc.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

func (s *winShell) onTrayMessage(id, code uint32) {
	icon, ok := s.icons[id]
	if !ok || icon.onClick == nil {
		return
	}

	var button Button
	switch code {
	case wmLButtonUp:
		button = ButtonLeft
	case wmRButtonUp:
		button = ButtonRight
	case wmMButtonUp:
		button = ButtonMiddle
	case wmXButtonUp:
		button = ButtonX1
	default:
		return
	}

	var pt point
	pGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	icon.onClick(ClickEvent{Button: button, Position: Point{X: int(pt.X), Y: int(pt.Y)}})
}

func (s *winShell) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		fn()
	}
}

func (s *winShell) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quitting {
		return
	}
	s.quitting = true
	if s.hwnd != 0 {
		pPostMessage.Call(uintptr(s.hwnd), wmAppQuit, 0, 0)
	}
}

func (s *winShell) Post(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quitting {
		return
	}
	s.queue = append(s.queue, fn)
	if s.hwnd != 0 {
		pPostMessage.Call(uintptr(s.hwnd), wmAppPost, 0, 0)
	}
}

func (s *winShell) NewIcon(onClick func(ClickEvent)) Icon {
	s.nextIconID++
	icon := &winIcon{s: s, onClick: onClick}
	icon.nid.Size = uint32(unsafe.Sizeof(icon.nid))
	icon.nid.Wnd = s.hwnd
	icon.nid.ID = s.nextIconID
	icon.nid.Flags = nifMessage
	icon.nid.CallbackMessage = wmAppTray
	s.icons[icon.nid.ID] = icon
	return icon
}

func (s *winShell) ShowMenu(m *Menu, pt Point) {
	hmenu, _, err := pCreatePopupMenu.Call()
	if hmenu == 0 {
		log.Printf("[shell] CreatePopupMenu failed: %v", err)
		return
	}
	defer pDestroyMenu.Call(hmenu)

	actions := make(map[uintptr]func())
	for i, item := range m.Items {
		if item.Kind == KindSeparator {
			pAppendMenu.Call(hmenu, mfSeparator, 0, 0)
			continue
		}

		id := uintptr(i + 1)
		flags := uintptr(mfString)
		if !item.Enabled {
			flags |= mfGrayed
		}
		if item.Checked {
			flags |= mfChecked
		}
		label, err := windows.UTF16PtrFromString(strings.ReplaceAll(item.Label, "&", "&&"))
		if err != nil {
			label, _ = windows.UTF16PtrFromString("?")
		}
		pAppendMenu.Call(hmenu, flags, id, uintptr(unsafe.Pointer(label)))
		if item.Enabled && item.Action != nil {
			actions[id] = item.Action
		}
	}

	// The owner window has to be foreground before tracking or the menu
	// will not close when the user clicks elsewhere.
	w := &menuWindow{hwnd: s.hwnd}
	if m.OnOpened != nil {
		m.OnOpened(w)
	}

	flags := uintptr(tpmReturnCmd | tpmRightBtn | tpmNoNotify)
	if m.RTL {
		flags |= tpmLayoutRTL
	}
	if w.noAnimation {
		flags |= tpmNoAnim
	}
	cmd, _, _ := pTrackPopupMenu.Call(hmenu, flags, uintptr(pt.X), uintptr(pt.Y), 0, uintptr(s.hwnd), 0)
	pPostMessage.Call(uintptr(s.hwnd), wmNull, 0, 0)

	if action, ok := actions[cmd]; ok {
		action()
	}
}

type menuWindow struct {
	hwnd        windows.HWND
	noAnimation bool
}

func (w *menuWindow) SetForeground() { pSetForegroundWindow.Call(uintptr(w.hwnd)) }
func (w *menuWindow) Focus()         { pSetFocus.Call(uintptr(w.hwnd)) }
func (w *menuWindow) DisableAnimation() {
	w.noAnimation = true
}

// winIcon is one notification-area icon.
type winIcon struct {
	s        *winShell
	nid      notifyIconData
	hicon    windows.Handle
	onClick  func(ClickEvent)
	visible  bool
	disposed bool
}

func (i *winIcon) SetImage(png []byte) {
	if i.disposed {
		return
	}
	h, err := iconFromPNG(png)
	if err != nil {
		log.Printf("[shell] Failed to load tray icon: %v", err)
		return
	}
	old := i.hicon
	i.hicon = h
	i.nid.Icon = h
	i.nid.Flags |= nifIcon
	i.modify()
	if old != 0 {
		pDestroyIcon.Call(uintptr(old))
	}
}

func (i *winIcon) SetToolTip(text string) {
	if i.disposed {
		return
	}
	units := utf16.Encode([]rune(text))
	if len(units) > maxTipLength {
		units = units[:maxTipLength]
	}
	i.nid.Tip = [128]uint16{}
	copy(i.nid.Tip[:], units)
	i.nid.Flags |= nifTip
	i.modify()
}

func (i *winIcon) SetVisible(visible bool) {
	if i.disposed || visible == i.visible {
		return
	}
	op := uintptr(nimDelete)
	if visible {
		op = nimAdd
	}
	if err := i.nid.call(op); err != nil {
		log.Printf("[shell] Shell_NotifyIcon(%d) failed: %v", op, err)
		return
	}
	i.visible = visible
}

func (i *winIcon) Dispose() {
	if i.disposed {
		return
	}
	i.SetVisible(false)
	if i.hicon != 0 {
		pDestroyIcon.Call(uintptr(i.hicon))
		i.hicon = 0
	}
	i.disposed = true
	delete(i.s.icons, i.nid.ID)
}

func (i *winIcon) modify() {
	if !i.visible {
		return
	}
	if err := i.nid.call(nimModify); err != nil {
		log.Printf("[shell] Shell_NotifyIcon(modify) failed: %v", err)
	}
}

func (i *winIcon) readd() {
	if !i.visible || i.disposed {
		return
	}
	if err := i.nid.call(nimAdd); err != nil {
		log.Printf("[shell] Failed to re-add tray icon: %v", err)
	}
}

// iconFromPNG creates an HICON from PNG data. Windows accepts PNG icon
// resources since Vista.
func iconFromPNG(png []byte) (windows.Handle, error) {
	if len(png) == 0 {
		return 0, errors.New("empty icon data")
	}
	h, _, err := pCreateIconFromResourceEx.Call(
		uintptr(unsafe.Pointer(&png[0])),
		uintptr(len(png)),
		1, // fIcon
		iconResVer,
		0, 0, 0,
	)
	if h == 0 {
		return 0, fmt.Errorf("CreateIconFromResourceEx: %w", err)
	}
	return windows.Handle(h), nil
}
