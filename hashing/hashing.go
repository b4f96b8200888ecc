// Package hashing fingerprints record sequences with XXH3.
package hashing

import (
	"github.com/zeebo/xxh3"
)

// Records returns an order-independent fingerprint of the first n records of
// seq: the wrapping sum of each record's XXH3 hash. Two sequences holding the
// same records in any order share a fingerprint, so comparing the values from
// before and after a sort detects records that were lost or duplicated.
//
// seq must hold at least n*size bytes.
func Records(seq []byte, n, size int) uint64 {
	var sum uint64

	for i := range n {
		off := i * size
		sum += xxh3.Hash(seq[off : off+size])
	}

	return sum
}

// Sequence returns an order-dependent XXH3 hash of the first n records of seq.
// Two sorts of the same input agree on it exactly when they produced the same
// byte layout, which tells stable and unstable orderings of equal keys apart.
func Sequence(seq []byte, n, size int) uint64 {
	return xxh3.Hash(seq[:n*size])
}
