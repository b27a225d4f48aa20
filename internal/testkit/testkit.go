// Package testkit provides shared fakes for engine tests.
package testkit

import (
	"context"
	"errors"

	"github.com/louisbranch/radicex/random"
	"github.com/louisbranch/radicex/storage"
)

// RollSource replays scripted die faces through the rejection strategy.
// Each draw carries one face in its low 3-bit group, so one draw resolves
// to exactly one die. Rounds consume faces in house, player order.
type RollSource struct {
	faces []int
	next  int
}

// Rolls constructs a RollSource from die faces in draw order.
func Rolls(faces ...int) *RollSource {
	return &RollSource{faces: faces}
}

// Append schedules more faces after the current script.
func (s *RollSource) Append(faces ...int) {
	s.faces = append(s.faces, faces...)
}

// Remaining reports how many scripted faces are left.
func (s *RollSource) Remaining() int {
	return len(s.faces) - s.next
}

// Uint64 implements random.Source.
func (s *RollSource) Uint64() (uint64, error) {
	if s.next >= len(s.faces) {
		return 0, errors.New("roll script exhausted")
	}
	face := s.faces[s.next]
	s.next++
	return uint64(face - 1), nil
}

var _ random.Source = (*RollSource)(nil)

// FlakyStore wraps a store and fails Apply while Fail is set. Everything
// else passes through.
type FlakyStore struct {
	storage.Store
	Fail bool
}

// Apply implements storage.Store.
func (s *FlakyStore) Apply(ctx context.Context, m storage.Mutation) error {
	if s.Fail {
		return errors.New("apply failed")
	}
	return s.Store.Apply(ctx, m)
}
