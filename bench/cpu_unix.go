//go:build unix

package bench

import (
	"time"

	"golang.org/x/sys/unix"
)

// processCPUTime returns the user plus system CPU time consumed by the process.
func processCPUTime() (time.Duration, error) {
	var ru unix.Rusage

	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}

	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano()), nil
}
