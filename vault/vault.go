// Package vault implements custody of the engine's fungible pool.
//
// The vault owns a single pool bucket of the accepted resource class.
// Credits come in as buckets, debits leave as buckets, and every debit is
// checked against the balance first. The engine validates an operation
// completely (CanDeposit, CanWithdraw) before committing it, so custody
// mutations on the commit path cannot fail halfway.
package vault

import (
	"fmt"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/ledger"
)

// Vault holds the running balance of one resource class.
type Vault struct {
	pool *ledger.Bucket
}

// New creates an empty vault accepting the given resource class.
func New(resource ledger.ResourceID) *Vault {
	return &Vault{pool: ledger.EmptyBucket(resource)}
}

// Resource returns the resource class the vault accepts.
func (v *Vault) Resource() ledger.ResourceID {
	return v.pool.Resource()
}

// Balance returns the current pool balance.
func (v *Vault) Balance() ledger.Amount {
	return v.pool.Amount()
}

// Put absorbs the entire bucket into the pool.
func (v *Vault) Put(b *ledger.Bucket) error {
	return v.pool.Put(b)
}

// CanDeposit validates a deposit without mutating anything. The payment
// must be of the accepted class and must hold strictly more than amount;
// paying in the exact amount fails rather than succeeding with zero change.
func (v *Vault) CanDeposit(amount ledger.Amount, payment *ledger.Bucket) error {
	if payment.Resource() != v.pool.Resource() {
		return apperrors.WithMetadata(apperrors.CodeInvalidAsset,
			"payment is not of the accepted resource class",
			map[string]string{"Expected": string(v.pool.Resource()), "Got": string(payment.Resource())})
	}
	if amount < 0 {
		return apperrors.WithMetadata(apperrors.CodeInvalidAmount,
			"cannot deposit a negative amount",
			map[string]string{"Value": amount.String()})
	}
	if payment.Amount() <= amount {
		return apperrors.WithMetadata(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("payment of %s must exceed the deposit amount %s", payment.Amount(), amount),
			map[string]string{"Requested": amount.String(), "Available": payment.Amount().String()})
	}
	return nil
}

// Deposit takes exactly amount from the payment into the pool and returns
// the payment with the remainder as change.
func (v *Vault) Deposit(amount ledger.Amount, payment *ledger.Bucket) (*ledger.Bucket, error) {
	if err := v.CanDeposit(amount, payment); err != nil {
		return nil, err
	}
	taken, err := payment.Take(amount)
	if err != nil {
		return nil, err
	}
	if err := v.pool.Put(taken); err != nil {
		return nil, err
	}
	return payment, nil
}

// CanWithdraw validates a debit without mutating anything.
func (v *Vault) CanWithdraw(amount ledger.Amount) error {
	if amount < 0 {
		return apperrors.WithMetadata(apperrors.CodeInvalidAmount,
			"cannot withdraw a negative amount",
			map[string]string{"Value": amount.String()})
	}
	if amount > v.pool.Amount() {
		return apperrors.WithMetadata(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("vault holds %s, cannot debit %s", v.pool.Amount(), amount),
			map[string]string{"Requested": amount.String(), "Available": v.pool.Amount().String()})
	}
	return nil
}

// Withdraw debits exactly amount from the pool.
func (v *Vault) Withdraw(amount ledger.Amount) (*ledger.Bucket, error) {
	if err := v.CanWithdraw(amount); err != nil {
		return nil, err
	}
	return v.pool.Take(amount)
}

// WithdrawAll drains the pool. Admin gating lives at the operation tier,
// not here.
func (v *Vault) WithdrawAll() (*ledger.Bucket, error) {
	return v.pool.Take(v.pool.Amount())
}
