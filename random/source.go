// Package random supplies the wide random integers the round engine
// consumes.
//
// Sources deliver uniformly distributed 64-bit values on demand. The
// crypto-backed source is the operative default; the seeded source exists
// for deterministic tests and replayable scenarios. Neither reimplements a
// generator: they adapt crypto/rand and math/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source delivers one uniformly distributed unsigned 64-bit integer per
// call.
type Source interface {
	Uint64() (uint64, error)
}

// Crypto returns a Source backed by crypto/rand. It is safe for concurrent
// use.
func Crypto() Source {
	return cryptoSource{}
}

type cryptoSource struct{}

func (cryptoSource) Uint64() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random bytes: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// NewSeeded returns a deterministic Source for the given seed. It is not
// safe for concurrent use; callers serialize draws (the engine holds its
// operation lock while rolling).
func NewSeeded(seed int64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

type seededSource struct {
	rng *rand.Rand
}

func (s *seededSource) Uint64() (uint64, error) {
	return s.rng.Uint64(), nil
}
