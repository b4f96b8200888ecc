package compare

import (
	"encoding/binary"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func le32(v int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(v)) //nolint:gosec
}

func le64(v int64) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(v)) //nolint:gosec
}

func padded(s string, width int) []byte {
	rec := make([]byte, width)
	copy(rec, s)

	return rec
}

func TestInt32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b int32
		want int
	}{
		{1, 2, -1},
		{2, 1, 1},
		{7, 7, 0},
		{-1, 1, -1},
		{math.MinInt32, math.MaxInt32, -1},
		{math.MaxInt32, math.MinInt32, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Int32(le32(tt.a), le32(tt.b)), "%d vs %d", tt.a, tt.b)
	}
}

func TestInt64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, Int64(le64(math.MinInt64), le64(0)))
	assert.Equal(t, 1, Int64(le64(math.MaxInt64), le64(-1)))
	assert.Equal(t, 0, Int64(le64(12345678901), le64(12345678901)))
}

func TestUint32(t *testing.T) {
	t.Parallel()

	// 0xFFFFFFFF is -1 as a signed value but the largest unsigned one.
	assert.Equal(t, 1, Uint32(le32(-1), le32(1)))
	assert.Equal(t, -1, Int32(le32(-1), le32(1)))
}

func TestBytes_PaddedWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, Bytes(padded("app", 8), padded("apple", 8)))
	assert.Equal(t, 1, Bytes(padded("banana", 8), padded("apple", 8)))
	assert.Equal(t, 0, Bytes(padded("kiwi", 8), padded("kiwi", 8)))
}

func TestNatural(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, Natural(padded("file2", 16), padded("file10", 16)))
	assert.Equal(t, 1, Natural(padded("file10", 16), padded("file2", 16)))
	assert.Equal(t, 0, Natural(padded("file7", 16), padded("file7", 8)))

	// Plain byte order disagrees.
	assert.Equal(t, 1, Bytes(padded("file2", 16), padded("file10", 16)))
}

func TestCollated(t *testing.T) {
	t.Parallel()

	words := []string{"zebra", "Äpfel", "apple", "Zoo"}

	recs := make([][]byte, len(words))
	for i, w := range words {
		recs[i] = padded(w, 12)
	}

	slices.SortFunc(recs, Collated(language.German, collate.IgnoreCase))

	got := make([]string, len(recs))
	for i, r := range recs {
		got[i] = text(r)
	}

	assert.Equal(t, []string{"Äpfel", "apple", "zebra", "Zoo"}, got)
}
