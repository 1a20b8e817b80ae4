// Package hash wraps xxHash64 behind the incremental/one-shot interface the
// depot engine needs for computing and verifying EntryInfo.Hash.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Hasher accumulates bytes and produces a 64-bit digest with a fixed seed.
type Hasher interface {
	io.Writer
	// Sum64 returns the current digest. It does not reset the accumulated state.
	Sum64() uint64
}

// New returns a fresh Hasher, seeded identically on every call (xxHash64's
// default seed).
func New() Hasher {
	return xxhash.New()
}

// Hash consumes r to EOF and returns its xxHash64 digest.
func Hash(r io.Reader) (uint64, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}

	return h.Sum64(), nil
}
