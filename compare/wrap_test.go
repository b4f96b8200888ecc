package compare

import (
	"cmp"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverse(t *testing.T) {
	t.Parallel()

	t.Run("typed", func(t *testing.T) {
		t.Parallel()

		values := []int{3, 1, 4, 1, 5, 9, 2, 6}
		slices.SortFunc(values, Reverse(cmp.Compare[int]))

		assert.Equal(t, []int{9, 6, 5, 4, 3, 2, 1, 1}, values)
	})

	t.Run("records", func(t *testing.T) {
		t.Parallel()

		desc := Reverse(Int32)

		assert.Equal(t, 1, desc(le32(1), le32(2)))
		assert.Equal(t, 0, desc(le32(2), le32(2)))
	})
}

func TestCounter(t *testing.T) {
	t.Parallel()

	t.Run("counts calls", func(t *testing.T) {
		t.Parallel()

		counter := Counting(cmp.Compare[string])

		assert.Equal(t, -1, counter.Compare("a", "b"))
		assert.Equal(t, 0, counter.Compare("b", "b"))
		assert.Equal(t, int64(2), counter.Calls())

		counter.Reset()
		assert.Zero(t, counter.Calls())
	})

	t.Run("concurrent", func(t *testing.T) {
		t.Parallel()

		counter := Counting(Int32)
		a, b := le32(1), le32(2)

		var wg sync.WaitGroup

		for range 8 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for range 500 {
					counter.Compare(a, b)
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, int64(4000), counter.Calls())
	})
}
