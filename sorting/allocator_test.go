package sorting

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget(t *testing.T) {
	t.Parallel()

	t.Run("tracks usage and peak", func(t *testing.T) {
		t.Parallel()

		b := NewBudget(100)

		require.NoError(t, b.Acquire(40))
		require.NoError(t, b.Acquire(50))
		assert.Equal(t, int64(90), b.InUse())

		b.Release(50)
		require.NoError(t, b.Acquire(10))

		assert.Equal(t, int64(50), b.InUse())
		assert.Equal(t, int64(90), b.Peak())
		assert.Equal(t, int64(3), b.Acquisitions())
	})

	t.Run("refuses past the limit", func(t *testing.T) {
		t.Parallel()

		b := NewBudget(10)

		require.NoError(t, b.Acquire(8))

		err := b.Acquire(3)
		require.ErrorIs(t, err, ErrAllocation)
		assert.Equal(t, int64(8), b.InUse())
		assert.Equal(t, int64(1), b.Refusals())
	})

	t.Run("zero value is unlimited", func(t *testing.T) {
		t.Parallel()

		var b Budget

		require.NoError(t, b.Acquire(1<<40))
		assert.Equal(t, int64(1<<40), b.Peak())
		assert.Zero(t, b.Limit())
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()

		b := NewBudget(0)

		var wg sync.WaitGroup

		for range 16 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for range 1000 {
					if err := b.Acquire(3); err == nil {
						b.Release(3)
					}
				}
			}()
		}

		wg.Wait()

		assert.Zero(t, b.InUse())
		assert.Equal(t, int64(16000), b.Acquisitions())
		assert.LessOrEqual(t, b.Peak(), int64(16*3))
	})
}

func TestUnbounded(t *testing.T) {
	t.Parallel()

	require.NoError(t, Unbounded.Acquire(1<<50))
	Unbounded.Release(1 << 50)
}
