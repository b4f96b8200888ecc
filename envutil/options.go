package envutil

import (
	"fmt"
	"slices"
	"strings"
)

// Option modifies a Reader. String, Bool and the other constructors apply
// their options in order, after parsing.
type Option[T any] func(Reader[T]) Reader[T]

// Default allows you to provide a default value for the Reader.
func Default[T any](dfl T) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithDefault(dfl)
	}
}

// IfMissing allows you to provide an error to return if the
// Reader is missing a value.
func IfMissing[T any](err error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithErrorIfMissing(err)
	}
}

// Validate allows you to provide a validation function to run
// on the Reader's value. If the validation function returns an
// error, the Reader will return that error.
func Validate[T any](f func(T) error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.Map(func(val T) (T, error) {
			err := f(val)

			return val, err
		})
	}
}

// Positive rejects zero and negative values.
func Positive[T int | int64 | float64](key string) Option[T] {
	return Validate(func(v T) error {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrBadEnvVar, key, v)
		}

		return nil
	})
}

// OneOf rejects values outside allowed.
func OneOf(allowed ...string) Option[string] {
	return Validate(func(v string) error {
		if slices.Contains(allowed, v) {
			return nil
		}

		return fmt.Errorf("%w: %q is not one of %s", ErrBadEnvVar, v, strings.Join(allowed, ", "))
	})
}
