//go:build !unix

package bench

import (
	"errors"
	"time"
)

var errNoCPUTime = errors.New("process CPU time is not available on this platform")

func processCPUTime() (time.Duration, error) {
	return 0, errNoCPUTime
}
