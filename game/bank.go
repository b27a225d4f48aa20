package game

import (
	"context"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/policy"
	"github.com/louisbranch/radicex/storage"
	"github.com/louisbranch/radicex/ticket"
)

// Deposit credits the vault with amount taken from the payment. The payment
// must hold strictly more than the amount; the remainder comes back as
// change.
func (e *Engine) Deposit(ctx context.Context, amount ledger.Amount, payment *ledger.Bucket) (change *ledger.Bucket, err error) {
	ctx, span := e.tracer.Start(ctx, "game.deposit")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpDeposit, ""); err != nil {
		return nil, err
	}
	if err = e.coinPayment(payment); err != nil {
		return nil, err
	}
	if err = e.vault.CanDeposit(amount, payment); err != nil {
		return nil, err
	}

	m := storage.Mutation{
		VaultDelta: amount,
		Events: []event.Event{{
			Type:        event.TypeDeposited,
			Amount:      amount,
			Description: "vault deposit",
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist deposit", err)
		return nil, err
	}

	change, err = e.vault.Deposit(amount, payment)
	if err != nil {
		return nil, err
	}

	e.logger.Printf("vault credited amount=%s balance=%s", amount, e.vault.Balance())
	return change, nil
}

// RedeemPrize pays out the prize for a ticket at the top level and resets
// the ticket to the exhausted level. The vault must cover the prize before
// the ticket is examined: a win against an underfunded vault fails without
// consuming the redeemable state.
func (e *Engine) RedeemPrize(ctx context.Context, proof ledger.Proof) (payout *ledger.Bucket, err error) {
	ctx, span := e.tracer.Start(ctx, "game.redeem_prize")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpRedeemPrize, ""); err != nil {
		return nil, err
	}
	t, err := e.ticketFromProof(proof)
	if err != nil {
		return nil, err
	}
	if err = e.vault.CanWithdraw(Prize); err != nil {
		return nil, err
	}
	updated, err := ticket.Redeem(t)
	if err != nil {
		return nil, err
	}

	m := storage.Mutation{
		VaultDelta: -Prize,
		Put:        []storage.TicketRecord{record(updated)},
		Events: []event.Event{{
			Type:        event.TypePrizeRedeemed,
			TicketID:    t.ID,
			Level:       updated.Level,
			Amount:      Prize,
			Description: updated.LastThrow,
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist prize redemption", err)
		return nil, err
	}

	payout, err = e.vault.Withdraw(Prize)
	if err != nil {
		return nil, err
	}
	e.tickets.Commit(updated)

	e.logger.Printf("prize redeemed ticket_id=%d payout=%s balance=%s", t.ID, Prize, e.vault.Balance())
	return payout, nil
}

// WithdrawAll drains the vault. It requires the operator grant. Draining an
// empty vault succeeds with an empty bucket.
func (e *Engine) WithdrawAll(ctx context.Context, grantToken string) (payout *ledger.Bucket, err error) {
	ctx, span := e.tracer.Start(ctx, "game.withdraw_all")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err = e.authorize(policy.OpWithdrawAll, grantToken); err != nil {
		return nil, err
	}

	balance := e.vault.Balance()
	m := storage.Mutation{
		VaultDelta: -balance,
		Events: []event.Event{{
			Type:        event.TypeVaultDrained,
			Amount:      balance,
			Description: "vault drained",
			Timestamp:   e.timestamp(),
		}},
	}
	if err = e.store.Apply(ctx, m); err != nil {
		err = apperrors.Wrap(apperrors.CodeInternal, "persist vault drain", err)
		return nil, err
	}

	payout, err = e.vault.WithdrawAll()
	if err != nil {
		return nil, err
	}

	e.logger.Printf("vault drained amount=%s", balance)
	return payout, nil
}
