package dice

import (
	"errors"
	"testing"

	"github.com/louisbranch/radicex/random"
)

// stubSource replays a fixed sequence of draws.
type stubSource struct {
	draws []uint64
	next  int
}

func (s *stubSource) Uint64() (uint64, error) {
	if s.next >= len(s.draws) {
		return 0, errors.New("stub exhausted")
	}
	d := s.draws[s.next]
	s.next++
	return d, nil
}

func TestRejectionAcceptsFirstValidGroup(t *testing.T) {
	// Low group is 7 (rejected), next group is 5 (accepted as die 6).
	src := &stubSource{draws: []uint64{0x2F}}
	var r Rejection
	got, err := r.Roll(src)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestRejectionRedrawsWhenDrawExhausted(t *testing.T) {
	// All 21 groups of the first draw hold 7; the second draw's low group
	// holds 0 and is accepted as die 1.
	exhausted := uint64(1)<<63 - 1
	src := &stubSource{draws: []uint64{exhausted, 0}}
	var r Rejection
	got, err := r.Roll(src)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if src.next != 2 {
		t.Fatalf("expected 2 draws consumed, got %d", src.next)
	}
}

func TestRejectionPropagatesSourceFailure(t *testing.T) {
	src := &stubSource{}
	var r Rejection
	if _, err := r.Roll(src); err == nil {
		t.Fatal("expected error from exhausted source")
	}
}

func TestModuloReducesDraw(t *testing.T) {
	tests := []struct {
		draw uint64
		want int
	}{
		{0, 1},
		{5, 6},
		{6, 1},
		{11, 6},
		// 2^64 mod 6 is 4, so the top draw lands on face 4. That remainder
		// is exactly the bias the rejection strategy removes.
		{^uint64(0), 4},
	}
	var m Modulo
	for _, tt := range tests {
		src := &stubSource{draws: []uint64{tt.draw}}
		got, err := m.Roll(src)
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		if got != tt.want {
			t.Fatalf("draw %d: expected %d, got %d", tt.draw, tt.want, got)
		}
	}
}

func TestRejectionUniformity(t *testing.T) {
	const samples = 120000
	src := random.NewSeeded(42)
	var r Rejection

	counts := make([]int, 7)
	for i := 0; i < samples; i++ {
		v, err := r.Roll(src)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		if v < 1 || v > 6 {
			t.Fatalf("roll %d: value %d out of range", i, v)
		}
		counts[v]++
	}

	expected := float64(samples) / 6
	chi2 := 0.0
	for face := 1; face <= 6; face++ {
		diff := float64(counts[face]) - expected
		chi2 += diff * diff / expected
	}

	// 99.99th percentile of chi-square with 5 degrees of freedom.
	if chi2 > 25.745 {
		t.Fatalf("rejection sampling not uniform: chi2=%.3f counts=%v", chi2, counts[1:])
	}
}
