// Package random provides cryptographic seed generation helpers for the
// game's deterministic pseudo-random sources.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Resolve returns seed unchanged unless it is zero, in which case a fresh
// crypto seed is drawn.
func Resolve(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}
