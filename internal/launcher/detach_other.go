//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own process group so terminal signals sent
// to the tray do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
}
