package ledger

import (
	apperrors "github.com/louisbranch/radicex/errors"
)

// Bucket is a consumable container of fungible value. Operations split value
// out of a bucket with Take; whatever remains stays with the caller as
// change. Buckets are created only by the ledger faucet and by custody
// debits, never constructed directly.
type Bucket struct {
	resource ResourceID
	amount   Amount
}

// Resource returns the resource class the bucket holds.
func (b *Bucket) Resource() ResourceID {
	return b.resource
}

// Amount returns the value remaining in the bucket.
func (b *Bucket) Amount() Amount {
	return b.amount
}

// Take splits off exactly amount into a new bucket, leaving the remainder.
// Fails with INSUFFICIENT_FUNDS when the bucket holds less than requested.
func (b *Bucket) Take(amount Amount) (*Bucket, error) {
	if amount < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidAmount,
			"cannot take a negative amount from a bucket",
			map[string]string{"Value": amount.String()})
	}
	if b.amount < amount {
		return nil, apperrors.WithMetadata(apperrors.CodeInsufficientFunds,
			"bucket holds less than requested",
			map[string]string{"Requested": amount.String(), "Available": b.amount.String()})
	}
	b.amount -= amount
	return &Bucket{resource: b.resource, amount: amount}, nil
}

// Put merges the entire contents of other into this bucket, leaving other
// empty. Fails with INVALID_ASSET when the resource classes differ.
func (b *Bucket) Put(other *Bucket) error {
	if other.resource != b.resource {
		return apperrors.WithMetadata(apperrors.CodeInvalidAsset,
			"cannot merge buckets of different resource classes",
			map[string]string{"Expected": string(b.resource), "Got": string(other.resource)})
	}
	b.amount += other.amount
	other.amount = 0
	return nil
}

// EmptyBucket returns a bucket of the given resource holding nothing.
// Empty buckets carry no value, so creating one is always safe; custody
// code uses them to seed pools.
func EmptyBucket(resource ResourceID) *Bucket {
	return &Bucket{resource: resource}
}
