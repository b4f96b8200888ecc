// Package errors holds helpers for accumulating errors from independent steps.
package errors

import "errors"

// Collection accumulates errors from steps that should all run even when some
// fail, such as the cases of one benchmark run. It is not safe for concurrent use.
type Collection struct {
	errors []error
}

// Add appends err. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns how many errors were collected.
func (c *Collection) Len() int {
	return len(c.errors)
}

// Errors returns a copy of the collected errors in the order they were added.
func (c *Collection) Errors() []error {
	return append([]error(nil), c.errors...)
}

// GetError returns nil for an empty collection, the error itself when there is
// exactly one, and an errors.Join of all of them otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
