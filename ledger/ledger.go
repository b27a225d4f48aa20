// Package ledger provides the resource primitives the game engine settles
// value in: fixed-point amounts, resource classes, and the capability values
// (buckets, tokens, proofs) that callers exchange with operations.
//
// The ledger itself is an external collaborator to the engine. It creates
// resource classes and mints the native coin; the engine registers its own
// ticket class and keeps the resulting manager private, so tokens of that
// class cannot be minted outside the engine. Custody is possession of a
// value: buckets are consumed by splitting, tokens are voided on burn, and
// proofs assert ownership without transferring anything.
package ledger

import (
	"fmt"
	"sync"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/internal/id"
)

// ResourceID identifies a resource class created by a ledger.
type ResourceID string

// Ledger tracks resource classes and issues the native coin. It is the
// asset-creation bootstrap: hosts create one, mint coin for players, and
// hand the ledger to the engine at instantiation.
type Ledger struct {
	mu        sync.Mutex
	coin      ResourceID
	resources map[ResourceID]string
}

// New creates a ledger with the native coin class registered.
func New() (*Ledger, error) {
	l := &Ledger{resources: make(map[ResourceID]string)}
	coin, err := l.register("coin")
	if err != nil {
		return nil, err
	}
	l.coin = coin
	return l, nil
}

// Coin returns the resource id of the native coin.
func (l *Ledger) Coin() ResourceID {
	return l.coin
}

// MintCoin mints a bucket of native coin. This is the bootstrap faucet for
// hosts and tests; the engine never creates coin.
func (l *Ledger) MintCoin(amount Amount) (*Bucket, error) {
	if amount < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidAmount,
			fmt.Sprintf("cannot mint negative amount %s", amount),
			map[string]string{"Value": amount.String()})
	}
	return &Bucket{resource: l.coin, amount: amount}, nil
}

// NewResource registers a non-fungible resource class and returns its
// manager. Only the holder of the manager can mint or void tokens of the
// class, so keeping the manager private makes the class unforgeable.
func (l *Ledger) NewResource(name string) (*ResourceManager, error) {
	resource, err := l.register(name)
	if err != nil {
		return nil, err
	}
	return &ResourceManager{ledger: l, id: resource}, nil
}

func (l *Ledger) register(name string) (ResourceID, error) {
	suffix, err := id.NewID()
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "generate resource id", err)
	}
	resource := ResourceID(name + "-" + suffix)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.resources[resource] = name
	return resource, nil
}

// ResourceManager is the minting authority for one resource class.
type ResourceManager struct {
	ledger *Ledger
	id     ResourceID
}

// Resource returns the managed resource id.
func (m *ResourceManager) Resource() ResourceID {
	return m.id
}

// MintToken mints a token of the managed class carrying the given ids.
// Minting with no ids yields an empty token.
func (m *ResourceManager) MintToken(ids ...uint64) *Token {
	out := make([]uint64, len(ids))
	copy(out, ids)
	return &Token{resource: m.id, ids: out}
}

// VoidToken consumes a token of the managed class, emptying it so the value
// cannot be presented again. Voiding a token of another class fails.
func (m *ResourceManager) VoidToken(t *Token) error {
	if t.resource != m.id {
		return apperrors.WithMetadata(apperrors.CodeInvalidAsset,
			"token does not belong to this resource class",
			map[string]string{"Expected": string(m.id), "Got": string(t.resource)})
	}
	t.ids = nil
	return nil
}
