package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errMerge = errors.New("merge sort: allocation failed")
	errQuick = errors.New("quick sort: not sorted")
)

func TestCollection(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var c Collection

		assert.False(t, c.HasError())
		assert.Zero(t, c.Len())
		assert.NoError(t, c.GetError())
	})

	t.Run("nil errors are ignored", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(nil)
		c.Add(nil)

		assert.False(t, c.HasError())
	})

	t.Run("single error is returned as is", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(errMerge)

		assert.Same(t, errMerge, c.GetError())
	})

	t.Run("multiple errors are joined", func(t *testing.T) {
		t.Parallel()

		var c Collection

		c.Add(errMerge)
		c.Add(nil)
		c.Add(errQuick)

		err := c.GetError()
		require.ErrorIs(t, err, errMerge)
		require.ErrorIs(t, err, errQuick)
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []error{errMerge, errQuick}, c.Errors())

		c.Clear()
		assert.NoError(t, c.GetError())
	})
}
