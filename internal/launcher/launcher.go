// Package launcher starts the external programs and pages the tray links to.
package launcher

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os/exec"
	"strings"

	"github.com/pkg/browser"
)

// ErrEmptyCommand is returned when a panel has no command configured.
var ErrEmptyCommand = errors.New("empty command")

// Launcher starts programs and opens documents without waiting for them.
type Launcher interface {
	Run(name string, args ...string) error
	OpenURL(url string) error
	OpenFile(path string) error
}

// Exec is the Launcher used by the tray process.
type Exec struct{}

// New returns a launcher backed by os/exec and the desktop's URL handler.
func New() *Exec {
	return &Exec{}
}

// Run starts name detached from the tray. The child is reaped in the
// background so it never lingers as a zombie.
func (Exec) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("[launcher] %s exited: %v", name, err)
		}
	}()
	return nil
}

// OpenURL opens u with the desktop's default handler.
func (Exec) OpenURL(u string) error {
	if err := browser.OpenURL(u); err != nil {
		return fmt.Errorf("failed to open %s: %w", u, err)
	}
	return nil
}

// OpenFile opens path with the desktop's default handler.
func (Exec) OpenFile(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// Open runs argv through l. A single argument that carries a URL scheme
// (https://..., ms-settings:..., x-apple.systempreferences:...) is handed
// to the URL handler instead of being executed.
func Open(l Launcher, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrEmptyCommand
	}
	if len(argv) == 1 && isURL(argv[0]) {
		return l.OpenURL(argv[0])
	}
	return l.Run(argv[0], argv[1:]...)
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || len(u.Scheme) < 2 {
		// One-letter schemes are Windows drive letters.
		return false
	}
	return !strings.ContainsAny(u.Scheme, `\/`)
}
