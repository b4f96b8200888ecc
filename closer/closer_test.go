package closer

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errFlush = errors.New("flush failed")
	errFile  = errors.New("file close failed")
)

type recorder struct {
	name  string
	err   error
	order *[]string
}

func (r *recorder) Close() error {
	*r.order = append(*r.order, r.name)

	return r.err
}

func TestCloser(t *testing.T) {
	t.Parallel()

	t.Run("closes in order", func(t *testing.T) {
		t.Parallel()

		var order []string

		c := NewCloser(&recorder{name: "encoder", order: &order})
		c.Add(nil)
		c.Add(&recorder{name: "file", order: &order})

		require.NoError(t, c.Close())
		assert.Equal(t, []string{"encoder", "file"}, order)
	})

	t.Run("attempts every closer and joins errors", func(t *testing.T) {
		t.Parallel()

		var order []string

		c := NewCloser(
			&recorder{name: "encoder", err: errFlush, order: &order},
			&recorder{name: "file", err: errFile, order: &order},
		)

		err := c.Close()
		require.ErrorIs(t, err, errFlush)
		require.ErrorIs(t, err, errFile)
		assert.Len(t, order, 2)
	})
}

func TestCustomCloser(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CustomCloser(nil))

	called := false
	c := CustomCloser(func() error {
		called = true

		return nil
	})

	require.NoError(t, c.Close())
	assert.True(t, called)
}

func TestCloseOnce(t *testing.T) {
	t.Parallel()

	t.Run("closes once under concurrency", func(t *testing.T) {
		t.Parallel()

		var (
			mu    sync.Mutex
			calls int
		)

		c := CloseOnce(CustomCloser(func() error {
			mu.Lock()
			defer mu.Unlock()

			calls++

			return nil
		}))

		var wg sync.WaitGroup

		for range 8 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				assert.NoError(t, c.Close())
			}()
		}

		wg.Wait()

		assert.Equal(t, 1, calls)
		assert.Same(t, c, CloseOnce(c))
	})

	t.Run("failed close can be retried", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		c := CloseOnce(CustomCloser(func() error {
			attempts++
			if attempts == 1 {
				return errFlush
			}

			return nil
		}))

		require.ErrorIs(t, c.Close(), errFlush)
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
		assert.Equal(t, 2, attempts)
	})

	assert.Nil(t, CloseOnce(nil))
}

func TestReadCloser(t *testing.T) {
	t.Parallel()

	closed := false
	rc := ReadCloser{
		Reader: bytes.NewBufferString("42\n"),
		Closer: CustomCloser(func() error {
			closed = true

			return nil
		}),
	}

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	assert.Equal(t, "42\n", string(data))
	assert.True(t, closed)
}
