package game

import (
	"context"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/ticket"
)

// TestConcurrentOperationsHoldInvariants storms the engine with parallel
// buys, deposits, and plays. Round outcomes are random; the assertions are
// the invariants: the vault holds exactly what was paid in, every ticket
// level stays within bounds, and the journal matches the successful plays.
func TestConcurrentOperationsHoldInvariants(t *testing.T) {
	const workers = 8
	const roundsPerWorker = 5

	e, _, l := newTestEngine(t)
	ctx := context.Background()

	type workerResult struct {
		plays int
		err   error
	}
	results := make(chan workerResult, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()

			payment, err := l.MintCoin(TicketPrice)
			if err != nil {
				results <- workerResult{err: err}
				return
			}
			tok, _, err := e.BuyTicket(ctx, payment)
			if err != nil {
				results <- workerResult{err: err}
				return
			}

			funds, err := l.MintCoin(2 * ledger.Unit)
			if err != nil {
				results <- workerResult{err: err}
				return
			}
			if _, err := e.Deposit(ctx, ledger.Unit, funds); err != nil {
				results <- workerResult{err: err}
				return
			}

			plays := 0
			for range roundsPerWorker {
				err := e.PlayRound(ctx, tok.Present())
				if apperrors.IsCode(err, apperrors.CodeTicketNotPlayable) {
					// The ticket ran to an endpoint mid-storm.
					break
				}
				if err != nil {
					results <- workerResult{err: err}
					return
				}
				plays++
			}
			results <- workerResult{plays: plays}
		}()
	}
	wg.Wait()
	close(results)

	totalPlays := 0
	for result := range results {
		if result.err != nil {
			t.Fatalf("worker error = %v", result.err)
		}
		totalPlays += result.plays
	}

	wantBalance := workers*TicketPrice + workers*ledger.Unit
	if got := e.Balance(ctx); got != wantBalance {
		t.Errorf("balance = %s, want %s", got, wantBalance)
	}

	tickets := e.ListTickets(ctx)
	if len(tickets) != workers {
		t.Fatalf("tickets = %d, want %d", len(tickets), workers)
	}
	for _, tk := range tickets {
		if tk.Level < ticket.LevelMin || tk.Level > ticket.LevelMax {
			t.Errorf("ticket %d level %d out of bounds", tk.ID, tk.Level)
		}
	}

	rounds, err := e.ListEvents(ctx, `type = "round_played"`)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(rounds) != totalPlays {
		t.Errorf("round_played events = %d, want %d", len(rounds), totalPlays)
	}
}
