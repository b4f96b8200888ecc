//go:build !unix

package cli

import "errors"

// TerminalDimensions is not supported on this platform.
func TerminalDimensions() (uint, uint, error) {
	return 0, 0, errors.New("terminal dimensions are not available on this platform")
}
