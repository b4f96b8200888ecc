// Package envutil reads typed configuration from environment variables.
//
//	workers := envutil.Int("SORTBENCH_WORKERS", envutil.Default(1)).ValueOrFatal()
package envutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Intish is the set of integer types Int can parse.
type Intish interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

func get(key string) Reader[string] {
	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

// NewReader builds a Reader from raw parts, for values that come from somewhere
// other than the process environment.
func NewReader[T any](key string, present bool, err error, value T) Reader[T] {
	return Reader[T]{
		key:     key,
		present: present,
		value:   value,
		err:     err,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String reads key as is.
func String(key string, opts ...Option[string]) Reader[string] {
	return apply(get(key), opts)
}

// Bool reads key with strconv.ParseBool.
func Bool(key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(key), func(s string) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(s))
	}), opts)
}

// Int reads key using Go integer literal syntax, so digit separators and base
// prefixes work: "2_000_000", "0x10".
func Int[I Intish](key string, opts ...Option[I]) Reader[I] {
	return apply(Map(get(key), func(s string) (I, error) {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
		if err != nil {
			return 0, err
		}

		return I(v), nil
	}), opts)
}

// Float64 reads key as a floating point number.
func Float64(key string, opts ...Option[float64]) Reader[float64] {
	return apply(Map(get(key), func(s string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}), opts)
}

// Duration reads key with time.ParseDuration.
func Duration(key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	return apply(Map(get(key), func(s string) (time.Duration, error) {
		return time.ParseDuration(strings.TrimSpace(s))
	}), opts)
}

// SlogLevel reads key as a log level name (debug, info, warn, error) or a
// level with an offset such as "info+2".
func SlogLevel(key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(Map(get(key), func(s string) (slog.Level, error) {
		var level slog.Level

		err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s))))

		return level, err
	}), opts)
}

// Path reads key as a file system path. A leading "~/" is expanded to the home
// directory and the result is cleaned.
func Path(key string, opts ...Option[string]) Reader[string] {
	return apply(Map(get(key), expandPath), opts)
}

func expandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrBadEnvVar)
	}

	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		p = filepath.Join(home, rest)
	}

	return filepath.Clean(p), nil
}
