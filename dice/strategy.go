// Package dice produces die values and resolves rounds.
//
// Die production supports two named strategies. Rejection is the operative
// one: it partitions each random draw into 3-bit groups and rejects the two
// values that would skew the distribution, so payout-bearing rounds see a
// uniform die. Modulo is the naive reduction kept for comparison runs and
// benchmarks; it is never wired into a value-affecting path.
package dice

import (
	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/random"
)

// groupsPerDraw is how many non-overlapping 3-bit groups fit in a 64-bit
// draw. The top bit is never consumed.
const groupsPerDraw = 21

// Strategy produces a single die value in [1,6] from a random source.
type Strategy interface {
	Roll(src random.Source) (int, error)
}

// Rejection draws wide integers and scans their 3-bit groups low to high,
// returning the first group in [0,5] plus one. Groups holding 6 or 7 are
// discarded; when a draw is exhausted a fresh one is taken. Every face has
// probability exactly 1/6.
type Rejection struct{}

// Roll implements Strategy.
func (Rejection) Roll(src random.Source) (int, error) {
	for {
		draw, err := src.Uint64()
		if err != nil {
			return 0, apperrors.Wrap(apperrors.CodeInternal, "draw random integer", err)
		}
		for g := 0; g < groupsPerDraw; g++ {
			value := int(draw & 0x7)
			if value < 6 {
				return value + 1, nil
			}
			draw >>= 3
		}
	}
}

// Modulo reduces one draw with a remainder. 2^64 is not a multiple of 6, so
// faces 1 through 4 are overweighted by one part in 2^64/6 each. Comparison
// use only.
type Modulo struct{}

// Roll implements Strategy.
func (Modulo) Roll(src random.Source) (int, error) {
	draw, err := src.Uint64()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, "draw random integer", err)
	}
	return int(draw%6) + 1, nil
}
