// Package registry keeps the in-memory ticket catalog and the mint counter.
//
// The engine is the only caller. External code never receives a handle to
// the catalog; it observes tickets through read snapshots and mutates them
// by presenting capabilities to engine operations. An import guardrail test
// enforces the boundary.
package registry

import (
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/ticket"
)

// Registry is the mutable ticket catalog.
type Registry struct {
	nextID  uint64
	tickets map[uint64]ticket.Ticket
}

// New creates a catalog that mints ids starting from nextID. Ids start at 1,
// so a zero counter from a fresh store is normalized.
func New(nextID uint64) *Registry {
	if nextID < 1 {
		nextID = 1
	}
	return &Registry{
		nextID:  nextID,
		tickets: make(map[uint64]ticket.Ticket),
	}
}

// NextID returns the id the next minted ticket will carry.
func (r *Registry) NextID() uint64 {
	return r.nextID
}

// Commit upserts a ticket. Committing the current NextID advances the
// counter; committing an existing ticket leaves it untouched. Commit cannot
// fail: the engine validates and persists before committing in memory.
func (r *Registry) Commit(t ticket.Ticket) {
	r.tickets[t.ID] = t
	if t.ID >= r.nextID {
		r.nextID = t.ID + 1
	}
}

// Get returns the cataloged ticket with the given id.
func (r *Registry) Get(id uint64) (ticket.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return ticket.Ticket{}, notFound(id)
	}
	return t, nil
}

// Burn removes a ticket from the catalog.
func (r *Registry) Burn(id uint64) error {
	if _, ok := r.tickets[id]; !ok {
		return notFound(id)
	}
	delete(r.tickets, id)
	return nil
}

// Len returns the number of cataloged tickets.
func (r *Registry) Len() int {
	return len(r.tickets)
}

// List returns all cataloged tickets ordered by id.
func (r *Registry) List() []ticket.Ticket {
	out := make([]ticket.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func notFound(id uint64) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		"ticket is not in the catalog",
		map[string]string{"TicketID": strconv.FormatUint(id, 10)})
}
