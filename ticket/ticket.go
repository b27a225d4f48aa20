// Package ticket defines the ticket record and its lifecycle transitions.
//
// A ticket is a non-fungible bearer instrument whose mutable state lives in
// the engine's registry keyed by id. The transitions here are pure: they
// validate the level preconditions and return the updated record, leaving
// persistence and authorization to the engine.
package ticket

import (
	"strconv"

	apperrors "github.com/louisbranch/radicex/errors"
)

const (
	// LevelMin is the exhausted boundary; a ticket here must reinitialize.
	LevelMin = 0
	// LevelMax is the redeemable boundary; a ticket here must redeem.
	LevelMax = 25
	// LevelStart is the level assigned on mint and reinitialization.
	LevelStart = 10
)

// Throw descriptions for the non-round transitions, stored verbatim.
const (
	mintedThrow        = "New Ticket, no play history"
	reinitializedThrow = "Just reinitialized the Ticket"
	redeemedThrow      = "Just redeemed a level 25 Ticket"
)

var (
	// ErrNotPlayable indicates the ticket sits on a boundary level where
	// rounds are disallowed.
	ErrNotPlayable = apperrors.New(apperrors.CodeTicketNotPlayable, "ticket cannot play a round at its level")
	// ErrStillPlayable indicates a reinitialization attempt on a ticket
	// that has not reached the exhausted boundary.
	ErrStillPlayable = apperrors.New(apperrors.CodeTicketStillPlayable, "ticket is still playable")
	// ErrNotRedeemable indicates a redemption attempt below the redeemable
	// boundary.
	ErrNotRedeemable = apperrors.New(apperrors.CodeTicketNotRedeemable, "ticket has not reached the redeemable level")
	// ErrLevelInvalid indicates a level outside the valid range, which can
	// only come from a corrupt store or a broken round resolution.
	ErrLevelInvalid = apperrors.New(apperrors.CodeTicketLevelInvalid, "ticket level out of range")
)

// Ticket is the mutable record the registry keeps per minted id.
type Ticket struct {
	ID        uint64
	Level     int
	LastThrow string
}

// New returns a freshly minted ticket record at the starting level.
func New(id uint64) Ticket {
	return Ticket{
		ID:        id,
		Level:     LevelStart,
		LastThrow: mintedThrow,
	}
}

// Validate checks the level invariant. Stores run this on restored records.
func Validate(t Ticket) error {
	if t.Level < LevelMin || t.Level > LevelMax {
		return levelError(apperrors.CodeTicketLevelInvalid, "ticket level out of range", t.Level)
	}
	return nil
}

// CanPlay reports whether the ticket may play a round. Tickets on either
// boundary cannot: the redeemable boundary is checked first, matching the
// order callers observe.
func CanPlay(t Ticket) error {
	if t.Level == LevelMax {
		return levelError(apperrors.CodeTicketNotPlayable, "ticket is ready to redeem, not playable", t.Level)
	}
	if t.Level == LevelMin {
		return levelError(apperrors.CodeTicketNotPlayable, "ticket is exhausted, reinitialize it first", t.Level)
	}
	return nil
}

// ApplyThrow returns the ticket with a resolved round committed to it.
// The level must already be within range; rounds clamp before committing.
func ApplyThrow(t Ticket, level int, description string) (Ticket, error) {
	if level < LevelMin || level > LevelMax {
		return Ticket{}, levelError(apperrors.CodeTicketLevelInvalid, "round resolved outside the ticket range", level)
	}
	updated := t
	updated.Level = level
	updated.LastThrow = description
	return updated, nil
}

// Reinitialize returns the ticket brought back to the starting level.
// Only exhausted tickets can reinitialize.
func Reinitialize(t Ticket) (Ticket, error) {
	if t.Level != LevelMin {
		return Ticket{}, levelError(apperrors.CodeTicketStillPlayable, "only an exhausted ticket can reinitialize", t.Level)
	}
	updated := t
	updated.Level = LevelStart
	updated.LastThrow = reinitializedThrow
	return updated, nil
}

// Redeem returns the ticket reset to the exhausted level after a win.
// Only tickets at the redeemable boundary can redeem.
func Redeem(t Ticket) (Ticket, error) {
	if t.Level != LevelMax {
		return Ticket{}, levelError(apperrors.CodeTicketNotRedeemable, "only a ticket at the top level can redeem", t.Level)
	}
	updated := t
	updated.Level = LevelMin
	updated.LastThrow = redeemedThrow
	return updated, nil
}

func levelError(code apperrors.Code, message string, level int) error {
	return apperrors.WithMetadata(code, message, map[string]string{
		"Level": strconv.Itoa(level),
	})
}
