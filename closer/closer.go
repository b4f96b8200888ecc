// Package closer combines io.Closer values so that layered resources, such as a
// decompressor over a file, can be released with one call.
package closer

import (
	"errors"
	"io"
	"sync"
)

type customCloser struct {
	closeFn func() error
}

// CustomCloser turns a cleanup function into an io.Closer. A nil function gives
// a nil Closer.
func CustomCloser(closeFn func() error) io.Closer {
	if closeFn == nil {
		return nil
	}

	return &customCloser{closeFn: closeFn}
}

func (c *customCloser) Close() error {
	return c.closeFn()
}

// Closer closes a stack of io.Closer values. Closers are closed in the order
// they were added, so add the outermost layer first; every one is attempted even
// if an earlier one fails.
type Closer struct {
	closers []io.Closer
}

// NewCloser creates a Closer over closers.
func NewCloser(closers ...io.Closer) *Closer {
	return &Closer{closers: closers}
}

// Add registers another closer. Nil closers are skipped on Close. Add is not
// safe for concurrent use.
func (c *Closer) Add(closer io.Closer) {
	c.closers = append(c.closers, closer)
}

// Close closes everything and joins the errors.
func (c *Closer) Close() error {
	var errs []error

	for _, closer := range c.closers {
		if closer != nil {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

type closeOnce struct {
	mut    sync.Mutex
	closed bool
	closer io.Closer
}

// CloseOnce wraps closer so that only the first successful Close reaches it.
// A failed Close may be retried. It is safe for concurrent use.
func CloseOnce(closer io.Closer) io.Closer {
	if closer == nil {
		return nil
	}

	if once, ok := closer.(*closeOnce); ok {
		return once
	}

	return &closeOnce{closer: closer}
}

func (c *closeOnce) Close() error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.closed {
		return nil
	}

	if err := c.closer.Close(); err != nil {
		return err
	}

	c.closed = true

	return nil
}

// ReadCloser pairs a reader with the Closer that releases it and everything
// beneath it.
type ReadCloser struct {
	io.Reader
	io.Closer
}

// WriteCloser pairs a writer with the Closer that flushes and releases it and
// everything beneath it.
type WriteCloser struct {
	io.Writer
	io.Closer
}
