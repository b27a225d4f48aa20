// Package memory provides an in-memory store for tests and ephemeral engines.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/event/filter"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/storage"
)

// Store keeps engine state and the event journal in process memory.
type Store struct {
	mu           sync.Mutex
	balance      ledger.Amount
	nextTicketID uint64
	grantKey     []byte
	tickets      map[uint64]storage.TicketRecord
	events       []event.Event
	nextEventID  uint64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		tickets:     make(map[uint64]storage.TicketRecord),
		nextEventID: 1,
	}
}

// Apply atomically applies one operation's mutation.
func (s *Store) Apply(ctx context.Context, m storage.Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balance+m.VaultDelta < 0 {
		return fmt.Errorf("vault balance %s cannot absorb delta %s", s.balance, m.VaultDelta)
	}

	s.balance += m.VaultDelta
	if m.NextTicketID != 0 {
		s.nextTicketID = m.NextTicketID
	}
	if len(m.GrantKey) > 0 {
		s.grantKey = append([]byte(nil), m.GrantKey...)
	}
	for _, record := range m.Put {
		s.tickets[record.ID] = record
	}
	for _, id := range m.Delete {
		delete(s.tickets, id)
	}
	for _, e := range m.Events {
		e.ID = s.nextEventID
		s.nextEventID++
		s.events = append(s.events, e)
	}
	return nil
}

// Snapshot returns the persisted engine state with tickets ordered by id.
func (s *Store) Snapshot(ctx context.Context) (storage.State, error) {
	if err := ctx.Err(); err != nil {
		return storage.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := storage.State{
		VaultBalance: s.balance,
		NextTicketID: s.nextTicketID,
	}
	if len(s.grantKey) > 0 {
		state.GrantKey = append([]byte(nil), s.grantKey...)
	}
	state.Tickets = make([]storage.TicketRecord, 0, len(s.tickets))
	for _, record := range s.tickets {
		state.Tickets = append(state.Tickets, record)
	}
	sort.Slice(state.Tickets, func(i, j int) bool {
		return state.Tickets[i].ID < state.Tickets[j].ID
	})
	return state, nil
}

// ListEvents returns journal entries matching an AIP-160 filter expression.
func (s *Store) ListEvents(ctx context.Context, filterStr string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pred, err := filter.ParsePredicate(filterStr)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []event.Event
	for _, e := range s.events {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close releases nothing; it exists to satisfy the store contract.
func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
