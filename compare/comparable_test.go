package compare

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record []byte

func (r record) Equals(other record) bool {
	return bytes.Equal(r, other)
}

type paddedWord string

// Equals ignores NUL padding.
func (w paddedWord) Equals(other paddedWord) bool {
	return Bytes(bytes.TrimRight([]byte(w), "\x00"), bytes.TrimRight([]byte(other), "\x00")) == 0
}

func TestEquals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a        Comparable[record]
		b        record
		expected bool
	}{
		{"same bytes", record{1, 2, 3}, record{1, 2, 3}, true},
		{"different bytes", record{1, 2, 3}, record{1, 2, 4}, false},
		{"different lengths", record{1, 2}, record{1, 2, 0}, false},
		{"both empty", record{}, record{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Equals(tt.a, tt.b))
		})
	}
}

func TestEquals_CustomSemantics(t *testing.T) {
	t.Parallel()

	assert.True(t, Equals[paddedWord](paddedWord("apple\x00\x00"), "apple"))
	assert.False(t, Equals[paddedWord](paddedWord("apple"), "apples"))
}
