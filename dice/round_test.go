package dice

import (
	"testing"

	"github.com/louisbranch/radicex/ticket"
)

func TestResolveDelta(t *testing.T) {
	r := Resolve(10, 3, 5)
	if r.Delta != 2 {
		t.Fatalf("expected delta +2, got %d", r.Delta)
	}
	if r.Level != 12 {
		t.Fatalf("expected level 12, got %d", r.Level)
	}
	if got := r.Description(); got != "House 3, Player 5, New Lvl 12(+2)" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestResolveTieBreak(t *testing.T) {
	// A tie never leaves the level unchanged: delta becomes player - 4.
	tests := []struct {
		tied  int
		delta int
	}{
		{1, -3},
		{2, -2},
		{3, -1},
		{4, 0},
		{5, 1},
		{6, 2},
	}
	for _, tt := range tests {
		r := Resolve(10, tt.tied, tt.tied)
		if r.Delta != tt.delta {
			t.Fatalf("tie at %d: expected delta %d, got %d", tt.tied, tt.delta, r.Delta)
		}
		if r.Level != 10+tt.delta {
			t.Fatalf("tie at %d: expected level %d, got %d", tt.tied, 10+tt.delta, r.Level)
		}
	}
}

func TestResolveTieExamples(t *testing.T) {
	if r := Resolve(10, 3, 3); r.Delta != -1 {
		t.Fatalf("expected house=3 player=3 to yield delta -1, got %d", r.Delta)
	}
	r := Resolve(3, 6, 2)
	if r.Delta != -4 {
		t.Fatalf("expected house=6 player=2 to yield delta -4, got %d", r.Delta)
	}
	if r.Level != ticket.LevelMin {
		t.Fatalf("expected clamp to %d, got %d", ticket.LevelMin, r.Level)
	}
}

func TestResolveClamp(t *testing.T) {
	if r := Resolve(24, 1, 6); r.Level != ticket.LevelMax {
		t.Fatalf("expected clamp to %d, got %d", ticket.LevelMax, r.Level)
	}
	if r := Resolve(1, 6, 1); r.Level != ticket.LevelMin {
		t.Fatalf("expected clamp to %d, got %d", ticket.LevelMin, r.Level)
	}
	if r := Resolve(1, 6, 1); r.Delta != -5 {
		t.Fatalf("expected delta to keep its unclamped value, got %d", r.Delta)
	}
}

func TestResolveNegativeDescription(t *testing.T) {
	r := Resolve(12, 6, 2)
	if got := r.Description(); got != "House 6, Player 2, New Lvl 8(-4)" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestResolveRoundUsesRejectionStrategy(t *testing.T) {
	// House reads 2 from the first group, player rejects a 7 then reads 4.
	src := &stubSource{draws: []uint64{0x2, 0x27}}
	r, err := ResolveRound(src, 10)
	if err != nil {
		t.Fatalf("resolve round: %v", err)
	}
	if r.House != 3 {
		t.Fatalf("expected house 3, got %d", r.House)
	}
	if r.Player != 5 {
		t.Fatalf("expected player 5, got %d", r.Player)
	}
	if r.Level != 12 {
		t.Fatalf("expected level 12, got %d", r.Level)
	}
}
