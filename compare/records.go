package compare

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"sync"

	"facette.io/natsort"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Int32 orders 4-byte little-endian signed integers.
func Int32(a, b []byte) int {
	return cmp.Compare(int32(binary.LittleEndian.Uint32(a)), int32(binary.LittleEndian.Uint32(b))) //nolint:gosec
}

// Int64 orders 8-byte little-endian signed integers.
func Int64(a, b []byte) int {
	return cmp.Compare(int64(binary.LittleEndian.Uint64(a)), int64(binary.LittleEndian.Uint64(b))) //nolint:gosec
}

// Uint32 orders 4-byte little-endian unsigned integers.
func Uint32(a, b []byte) int {
	return cmp.Compare(binary.LittleEndian.Uint32(a), binary.LittleEndian.Uint32(b))
}

// Bytes orders records lexicographically. NUL padding sorts before any printable
// byte, so fixed-width padded strings compare the way their unpadded text does.
func Bytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Natural orders NUL-padded text records so that embedded numbers compare by
// value: "file2" sorts before "file10".
func Natural(a, b []byte) int {
	sa, sb := text(a), text(b)

	switch {
	case sa == sb:
		return 0
	case natsort.Compare(sa, sb):
		return -1
	case natsort.Compare(sb, sa):
		return 1
	default:
		return 0
	}
}

// Collated returns a comparator that orders NUL-padded text records by the
// collation rules of tag. The returned comparator is safe for concurrent use.
func Collated(tag language.Tag, opts ...collate.Option) func(a, b []byte) int {
	c := collate.New(tag, opts...)

	var mu sync.Mutex

	return func(a, b []byte) int {
		mu.Lock()
		defer mu.Unlock()

		return c.Compare(bytes.TrimRight(a, "\x00"), bytes.TrimRight(b, "\x00"))
	}
}

func text(rec []byte) string {
	return string(bytes.TrimRight(rec, "\x00"))
}
