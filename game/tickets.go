package game

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/policy"
	"github.com/louisbranch/radicex/storage"
	"github.com/louisbranch/radicex/ticket"
)

// BuyTicket mints a ticket at the public price. The payment must hold at
// least the ticket price; the price moves into the vault and the payment
// comes back as change alongside the minted bearer token.
func (e *Engine) BuyTicket(ctx context.Context, payment *ledger.Bucket) (tok *ledger.Token, change *ledger.Bucket, err error) {
	ctx, span := e.tracer.Start(ctx, "game.buy_ticket")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpBuyTicket, ""); err != nil {
		return nil, nil, err
	}
	if err = e.coinPayment(payment); err != nil {
		return nil, nil, err
	}
	if payment.Amount() < TicketPrice {
		err = apperrors.WithMetadata(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("ticket costs %s, payment holds %s", TicketPrice, payment.Amount()),
			map[string]string{"Requested": TicketPrice.String(), "Available": payment.Amount().String()})
		return nil, nil, err
	}

	id := e.tickets.NextID()
	t := ticket.New(id)

	m := storage.Mutation{
		VaultDelta:   TicketPrice,
		NextTicketID: id + 1,
		Put:          []storage.TicketRecord{record(t)},
		Events: []event.Event{{
			Type:        event.TypeTicketBought,
			TicketID:    id,
			Level:       t.Level,
			Amount:      TicketPrice,
			Description: t.LastThrow,
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist ticket purchase", err)
		return nil, nil, err
	}

	paid, err := payment.Take(TicketPrice)
	if err != nil {
		return nil, nil, err
	}
	if err = e.vault.Put(paid); err != nil {
		return nil, nil, err
	}
	e.tickets.Commit(t)

	e.logger.Printf("ticket bought ticket_id=%d level=%d price=%s", id, t.Level, TicketPrice)
	return e.manager.MintToken(id), payment, nil
}

// ReinitTicket returns an exhausted ticket to the starting level for a fee.
// Only tickets at the bottom level qualify; the fee moves into the vault and
// the payment comes back as change.
func (e *Engine) ReinitTicket(ctx context.Context, proof ledger.Proof, payment *ledger.Bucket) (change *ledger.Bucket, err error) {
	ctx, span := e.tracer.Start(ctx, "game.reinit_ticket")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpReinitTicket, ""); err != nil {
		return nil, err
	}
	t, err := e.ticketFromProof(proof)
	if err != nil {
		return nil, err
	}
	if err = e.coinPayment(payment); err != nil {
		return nil, err
	}
	if payment.Amount() < ReinitPrice {
		err = apperrors.WithMetadata(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("reinitialization costs %s, payment holds %s", ReinitPrice, payment.Amount()),
			map[string]string{"Requested": ReinitPrice.String(), "Available": payment.Amount().String()})
		return nil, err
	}
	updated, err := ticket.Reinitialize(t)
	if err != nil {
		return nil, err
	}

	m := storage.Mutation{
		VaultDelta: ReinitPrice,
		Put:        []storage.TicketRecord{record(updated)},
		Events: []event.Event{{
			Type:        event.TypeTicketReinitialized,
			TicketID:    t.ID,
			Level:       updated.Level,
			Amount:      ReinitPrice,
			Description: updated.LastThrow,
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist ticket reinitialization", err)
		return nil, err
	}

	paid, err := payment.Take(ReinitPrice)
	if err != nil {
		return nil, err
	}
	if err = e.vault.Put(paid); err != nil {
		return nil, err
	}
	e.tickets.Commit(updated)

	e.logger.Printf("ticket reinitialized ticket_id=%d fee=%s", t.ID, ReinitPrice)
	return payment, nil
}

// BurnTicket consumes a bearer token and removes its ticket from the
// catalog. Unlike the proof operations, burning takes the token itself: the
// value is voided so it cannot be presented again.
func (e *Engine) BurnTicket(ctx context.Context, tok *ledger.Token) (err error) {
	ctx, span := e.tracer.Start(ctx, "game.burn_ticket")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpBurnTicket, ""); err != nil {
		return err
	}
	if tok == nil {
		err = apperrors.New(apperrors.CodeInvalidAsset, "ticket token is required")
		return err
	}
	if tok.Resource() != e.manager.Resource() {
		err = apperrors.WithMetadata(apperrors.CodeInvalidAsset,
			"token is not of the ticket class",
			map[string]string{
				"Expected": string(e.manager.Resource()),
				"Got":      string(tok.Resource()),
			})
		return err
	}
	if tok.Count() != 1 {
		err = apperrors.WithMetadata(apperrors.CodeInvalidProofCardinality,
			"token must carry exactly one ticket",
			map[string]string{"Count": strconv.Itoa(tok.Count())})
		return err
	}
	id := tok.IDs()[0]
	t, err := e.tickets.Get(id)
	if err != nil {
		return err
	}

	m := storage.Mutation{
		Delete: []uint64{id},
		Events: []event.Event{{
			Type:        event.TypeTicketBurned,
			TicketID:    id,
			Level:       t.Level,
			Description: t.LastThrow,
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist ticket burn", err)
		return err
	}

	if err = e.tickets.Burn(id); err != nil {
		return err
	}
	if err = e.manager.VoidToken(tok); err != nil {
		return err
	}

	e.logger.Printf("ticket burned ticket_id=%d level=%d", id, t.Level)
	return nil
}

// AdminMintTicket mints a ticket without payment. It requires the operator
// grant.
func (e *Engine) AdminMintTicket(ctx context.Context, grantToken string) (tok *ledger.Token, err error) {
	ctx, span := e.tracer.Start(ctx, "game.admin_mint_ticket")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpAdminMintTicket, grantToken); err != nil {
		return nil, err
	}

	id := e.tickets.NextID()
	t := ticket.New(id)

	m := storage.Mutation{
		NextTicketID: id + 1,
		Put:          []storage.TicketRecord{record(t)},
		Events: []event.Event{{
			Type:        event.TypeTicketMinted,
			TicketID:    id,
			Level:       t.Level,
			Description: t.LastThrow,
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist ticket mint", err)
		return nil, err
	}
	e.tickets.Commit(t)

	e.logger.Printf("ticket minted ticket_id=%d level=%d", id, t.Level)
	return e.manager.MintToken(id), nil
}

func record(t ticket.Ticket) storage.TicketRecord {
	return storage.TicketRecord{ID: t.ID, Level: t.Level, LastThrow: t.LastThrow}
}
