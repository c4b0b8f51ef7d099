//go:build !windows

package terminal

import (
	"os"
	"syscall"
)

// InterruptSignals returns the signals that abort an interactive run on Unix-like systems.
func InterruptSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
}
