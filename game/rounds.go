package game

import (
	"context"

	"github.com/louisbranch/radicex/dice"
	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/policy"
	"github.com/louisbranch/radicex/storage"
	"github.com/louisbranch/radicex/ticket"
)

// PlayRound resolves one round for the proven ticket. Both dice are drawn
// with the unbiased strategy, the delta is applied with the tie penalty and
// boundary clamp, and the throw record lands on the ticket. Tickets on
// either boundary level cannot play; the redeemable boundary is reported
// first.
func (e *Engine) PlayRound(ctx context.Context, proof ledger.Proof) (err error) {
	ctx, span := e.tracer.Start(ctx, "game.play_round")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpPlayRound, ""); err != nil {
		return err
	}
	t, err := e.ticketFromProof(proof)
	if err != nil {
		return err
	}
	if err = ticket.CanPlay(t); err != nil {
		return err
	}

	round, err := e.rollDice(t.Level)
	if err != nil {
		return err
	}
	updated, err := ticket.ApplyThrow(t, round.Level, round.Description())
	if err != nil {
		return err
	}

	m := storage.Mutation{
		Put: []storage.TicketRecord{record(updated)},
		Events: []event.Event{{
			Type:        event.TypeRoundPlayed,
			TicketID:    t.ID,
			Level:       updated.Level,
			Description: updated.LastThrow,
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist round", err)
		return err
	}
	e.tickets.Commit(updated)

	e.logger.Printf("round resolved ticket_id=%d house=%d player=%d level=%d delta=%+d",
		t.ID, round.House, round.Player, updated.Level, round.Delta)
	return nil
}

// rollDice draws both dice and resolves the round at the given level. The
// raw die sits on the internal tier: round resolution is its only caller,
// and no external credential opens it.
func (e *Engine) rollDice(level int) (dice.Round, error) {
	if !e.rules.Allowed(policy.OpRollDice, policy.TierInternal) {
		return dice.Round{}, unauthorized(policy.OpRollDice)
	}
	round, err := dice.ResolveRound(e.source, level)
	if err != nil {
		return dice.Round{}, apperrors.Wrap(apperrors.CodeInternal, "roll dice", err)
	}
	return round, nil
}
