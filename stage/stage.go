// Package stage tells where sortbench is running: a developer machine, a CI
// job, a dedicated benchmark host or a unit test. Telemetry reports it as the
// deployment environment, so lab timings can be told apart from laptop ones.
package stage

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/amp-labs/amp-sort/envutil"
	"github.com/amp-labs/amp-sort/lazy"
)

// Key is the environment variable that selects the stage.
const Key = "SORTBENCH_ENV"

// Stage represents a running environment.
type Stage string

// ErrUnrecognizedStage is returned by Parse for an unknown stage name.
var ErrUnrecognizedStage = errors.New("unrecognized stage")

const (
	// Local is a developer's machine. It is the default outside tests.
	Local Stage = "local"
	// Test is a unit test run.
	Test Stage = "test"
	// CI is a continuous integration job.
	CI Stage = "ci"
	// Lab is a dedicated, otherwise idle benchmark host.
	Lab Stage = "lab"
)

// Stages returns every known stage.
func Stages() []Stage {
	return []Stage{Local, Test, CI, Lab}
}

// Parse accepts a stage name, ignoring case and surrounding space.
func Parse(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))

	for _, known := range Stages() {
		if st == known {
			return st, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnrecognizedStage, s)
}

// Current returns the stage from SORTBENCH_ENV. It is read once and cached.
func Current() Stage {
	return runningStage.Get()
}

// IsLab reports whether timings come from a dedicated benchmark host.
func IsLab() bool {
	return Current() == Lab
}

// nolint:gochecknoglobals
var runningStage = lazy.New(getRunningStage)

// getRunningStage reads SORTBENCH_ENV. An unset or invalid value means Test
// inside a test binary and Local elsewhere.
func getRunningStage() Stage {
	env := envutil.Map(envutil.String(Key), Parse)

	if flag.Lookup("test.v") != nil {
		return env.ValueOrElse(Test)
	}

	return env.ValueOrElse(Local)
}
