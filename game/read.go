package game

import (
	"context"

	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/ticket"
)

// ReadTicket returns the current state of one ticket. The returned value is
// a copy; mutating it changes nothing.
func (e *Engine) ReadTicket(ctx context.Context, id uint64) (ticket.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickets.Get(id)
}

// ListTickets returns all cataloged tickets ordered by id.
func (e *Engine) ListTickets(ctx context.Context) []ticket.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickets.List()
}

// Balance returns the vault balance.
func (e *Engine) Balance(ctx context.Context) ledger.Amount {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vault.Balance()
}

// ListEvents returns journal entries matching an AIP-160 filter expression,
// ordered by sequence number. An empty filter returns the full journal.
func (e *Engine) ListEvents(ctx context.Context, filter string) ([]event.Event, error) {
	return e.store.ListEvents(ctx, filter)
}

// TicketResource returns the resource id of the ticket class.
func (e *Engine) TicketResource() ledger.ResourceID {
	return e.manager.Resource()
}

// CoinResource returns the resource id the vault accepts.
func (e *Engine) CoinResource() ledger.ResourceID {
	return e.vault.Resource()
}
