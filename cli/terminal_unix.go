//go:build unix

package cli

import (
	"os"

	"github.com/amp-labs/amp-sort/should"
	"golang.org/x/sys/unix"
)

// TerminalDimensions returns (rows, cols, err) of the controlling terminal.
func TerminalDimensions() (uint, uint, error) {
	f, err := os.Open("/dev/tty")
	if err != nil {
		return 0, 0, err
	}

	defer should.Close(f, "closing /dev/tty")

	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ) //nolint:gosec
	if err != nil {
		return 0, 0, err
	}

	return uint(ws.Row), uint(ws.Col), nil
}
