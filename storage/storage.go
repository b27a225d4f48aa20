// Package storage defines persistence contracts for engine state.
//
// A store persists three things: the scalar engine state (vault balance,
// mint counter, grant verification key), the ticket catalog, and the
// append-only event journal. The engine validates an operation completely
// before calling Apply, so a mutation describes only the changes of an
// already-decided commit and the store applies it atomically.
package storage

import (
	"context"

	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/ledger"
)

// TicketRecord stores one cataloged ticket.
type TicketRecord struct {
	ID        uint64
	Level     int
	LastThrow string
}

// State is the persisted engine state a store can restore.
type State struct {
	VaultBalance ledger.Amount
	NextTicketID uint64
	GrantKey     []byte
	Tickets      []TicketRecord
}

// Mutation describes the state changes of one committed operation. Event
// sequence numbers are assigned by the store on append; any ID set on an
// entry is ignored.
type Mutation struct {
	// VaultDelta adjusts the vault balance: positive credits, negative debits.
	VaultDelta ledger.Amount
	// NextTicketID advances the mint counter when non-zero.
	NextTicketID uint64
	// GrantKey records the grant verification key when non-empty. Written
	// once, at instantiation.
	GrantKey []byte
	// Put upserts ticket records in the catalog.
	Put []TicketRecord
	// Delete removes ticket ids from the catalog.
	Delete []uint64
	// Events appends journal entries.
	Events []event.Event
}

// Store persists engine state and the operation journal.
type Store interface {
	// Apply atomically applies one operation's mutation. Either every change
	// lands or none do.
	Apply(ctx context.Context, m Mutation) error
	// Snapshot returns the persisted engine state.
	Snapshot(ctx context.Context) (State, error)
	// ListEvents returns journal entries matching an AIP-160 filter
	// expression, ordered by sequence number. An empty filter matches all.
	ListEvents(ctx context.Context, filter string) ([]event.Event, error)
	// Close releases the store.
	Close() error
}
