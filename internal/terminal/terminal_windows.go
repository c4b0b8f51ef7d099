//go:build windows

package terminal

import "os"

// InterruptSignals returns the signals that abort an interactive run on Windows.
func InterruptSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
