// Package startup loads environment files before configuration is read, so a
// benchmark setup can live in a file next to the datasets.
package startup

import (
	"fmt"
	"os"
	"strings"

	"github.com/amp-labs/amp-sort/envutil"
)

// EnvFileKey names the variable holding a semicolon-separated list of
// environment files.
const EnvFileKey = "SORTBENCH_ENV_FILE"

// Option is a functional option for configuring environment loading behavior.
type Option func(*options)

type options struct {
	allowOverride bool
}

// WithAllowOverride lets values from files replace variables that are already
// set. By default the existing environment wins.
func WithAllowOverride(allowOverride bool) Option {
	return func(o *options) {
		o.allowOverride = allowOverride
	}
}

func getOptions(opts []Option) *options {
	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// ConfigureEnvironment loads the files listed in SORTBENCH_ENV_FILE. It does
// nothing when the variable is unset or empty.
func ConfigureEnvironment(opts ...Option) error {
	files := envutil.Map(envutil.String(EnvFileKey), splitFileList).ValueOrElse(nil)

	return ConfigureEnvironmentFromFiles(files, opts...)
}

func splitFileList(s string) ([]string, error) {
	var files []string

	for part := range strings.SplitSeq(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			files = append(files, part)
		}
	}

	return files, nil
}

// ConfigureEnvironmentFromFiles loads envFiles in order and sets the variables
// they define. A later file overrides an earlier one.
func ConfigureEnvironmentFromFiles(envFiles []string, opts ...Option) error {
	cfg := getOptions(opts)

	merged := make(map[string]string)

	for _, file := range envFiles {
		vars, err := LoadEnvFile(file)
		if err != nil {
			return fmt.Errorf("loading environment variables from file %q: %w", file, err)
		}

		for k, v := range vars {
			merged[k] = v
		}
	}

	for k, v := range merged {
		if _, exists := os.LookupEnv(k); exists && !cfg.allowOverride {
			continue
		}

		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("setting environment variable %q: %w", k, err)
		}
	}

	return nil
}
