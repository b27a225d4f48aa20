package dice

import (
	"fmt"

	"github.com/louisbranch/radicex/random"
	"github.com/louisbranch/radicex/ticket"
)

// Round is the outcome of one resolved round: both die values, the signed
// delta applied, and the resulting level after clamping.
type Round struct {
	House  int
	Player int
	Delta  int
	Level  int
}

// Description renders the throw record stored on the ticket.
func (r Round) Description() string {
	return fmt.Sprintf("House %d, Player %d, New Lvl %d(%+d)", r.House, r.Player, r.Level, r.Delta)
}

// ResolveRound rolls the house and player dice with the rejection strategy
// and resolves the round at currentLevel.
func ResolveRound(src random.Source, currentLevel int) (Round, error) {
	var strategy Rejection
	house, err := strategy.Roll(src)
	if err != nil {
		return Round{}, err
	}
	player, err := strategy.Roll(src)
	if err != nil {
		return Round{}, err
	}
	return Resolve(currentLevel, house, player), nil
}

// Resolve computes a round outcome from fixed die values. The delta is
// player minus house; a tie breaks to player minus 4 rather than leaving
// the level unchanged. The resulting level clamps to the ticket range.
func Resolve(currentLevel, house, player int) Round {
	delta := player - house
	if delta == 0 {
		delta = player - 4
	}
	return Round{
		House:  house,
		Player: player,
		Delta:  delta,
		Level:  clamp(currentLevel+delta, ticket.LevelMin, ticket.LevelMax),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
