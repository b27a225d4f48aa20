// Package game implements the dice game engine: ticket custody, round
// resolution, the prize vault, and the operator capability, composed over a
// pluggable store.
//
// The engine owns the pieces no caller may touch directly: the ticket
// resource manager (so tickets are unforgeable), the registry of mutable
// ticket state, and the coin vault. Every mutating operation follows the
// same commit discipline: validate completely with pure checks, persist the
// mutation through the store, then apply the already-validated changes in
// memory. A store failure leaves both sides untouched, and the in-memory
// commit cannot fail halfway.
package game

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/grant"
	"github.com/louisbranch/radicex/internal/registry"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/policy"
	"github.com/louisbranch/radicex/random"
	"github.com/louisbranch/radicex/storage"
	"github.com/louisbranch/radicex/storage/memory"
	"github.com/louisbranch/radicex/ticket"
	"github.com/louisbranch/radicex/vault"
)

// TicketResourceName names the non-fungible ticket class the engine
// registers at instantiation.
const TicketResourceName = "radicex-ticket"

const (
	defaultGrantIssuer   = "radicex"
	defaultGrantAudience = "radicex-operator"
)

// Economy constants, in hundredths of a coin unit.
const (
	// TicketPrice is the coin cost of one ticket.
	TicketPrice = ledger.Unit
	// ReinitPrice is the coin cost of reinitializing an exhausted ticket.
	ReinitPrice = ledger.Amount(90)
	// Prize is the payout for redeeming a ticket at the top level.
	Prize = 5 * ledger.Unit
)

// Engine is one instantiated game. Operations are safe for concurrent use;
// a single mutex serializes mutations so the store and the in-memory state
// advance together.
type Engine struct {
	mu sync.Mutex

	ledger    *ledger.Ledger
	manager   *ledger.ResourceManager
	vault     *vault.Vault
	tickets   *registry.Registry
	store     storage.Store
	rules     *policy.Ruleset
	authority *grant.Authority
	source    random.Source
	now       func() time.Time
	logger    *log.Logger
	tracer    trace.Tracer

	grantIssuer   string
	grantAudience string
}

// Option configures an engine at construction.
type Option func(*Engine)

// WithStore sets the persistence backend. Defaults to an in-memory store.
func WithStore(s storage.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithRules replaces the default operation ruleset.
func WithRules(r *policy.Ruleset) Option {
	return func(e *Engine) { e.rules = r }
}

// WithRandomSource sets the randomness supply for round resolution.
// Defaults to the crypto-backed source.
func WithRandomSource(src random.Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithClock sets the time source for journal timestamps and grant checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the operation logger. Defaults to the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithGrantIdentity sets the issuer and audience stamped into the operator
// grant.
func WithGrantIdentity(issuer, audience string) Option {
	return func(e *Engine) {
		e.grantIssuer = issuer
		e.grantAudience = audience
	}
}

func newEngine(l *ledger.Ledger, opts []Option) (*Engine, error) {
	if l == nil {
		return nil, apperrors.New(apperrors.CodeConfigInvalid, "ledger is required")
	}
	e := &Engine{
		ledger:        l,
		rules:         policy.Default(),
		source:        random.Crypto(),
		now:           time.Now,
		logger:        log.Default(),
		tracer:        otel.Tracer("radicex/game"),
		grantIssuer:   defaultGrantIssuer,
		grantAudience: defaultGrantAudience,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = memory.New()
	}
	if e.rules == nil {
		e.rules = policy.Default()
	}
	if e.source == nil {
		e.source = random.Crypto()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e, nil
}

// Instantiate creates a fresh engine on the given ledger. It registers the
// ticket resource class, creates the empty coin vault, issues the single
// operator grant, and journals the instantiation. The returned grant token
// is surfaced exactly once; the engine keeps only its verification key.
func Instantiate(ctx context.Context, l *ledger.Ledger, opts ...Option) (*Engine, string, error) {
	e, err := newEngine(l, opts)
	if err != nil {
		return nil, "", err
	}

	manager, err := l.NewResource(TicketResourceName)
	if err != nil {
		return nil, "", err
	}
	e.manager = manager
	e.vault = vault.New(l.Coin())
	e.tickets = registry.New(1)

	authority, token, err := grant.NewAuthority(e.grantIssuer, e.grantAudience, e.now)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeInternal, "issue operator grant", err)
	}
	e.authority = authority

	m := storage.Mutation{
		NextTicketID: e.tickets.NextID(),
		GrantKey:     authority.VerificationKey(),
		Events: []event.Event{{
			Type:        event.TypeInstantiated,
			Description: "engine instantiated",
			Timestamp:   e.timestamp(),
		}},
	}
	if err := e.store.Apply(ctx, m); err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeInternal, "persist instantiation", err)
	}

	e.logger.Printf("engine instantiated ticket_resource=%s coin_resource=%s",
		e.manager.Resource(), e.vault.Resource())
	return e, token, nil
}

// Restore rebuilds an engine from a store's persisted state. The ticket
// catalog, mint counter, and grant verification key come back exactly; the
// vault is re-funded from the ledger faucet to the persisted balance. Bearer
// values held by callers do not survive a restart: the ticket class is
// re-registered under a fresh resource id, so tokens must be re-presented
// against the restored catalog by the host.
func Restore(ctx context.Context, l *ledger.Ledger, opts ...Option) (*Engine, error) {
	e, err := newEngine(l, opts)
	if err != nil {
		return nil, err
	}

	state, err := e.store.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "read engine state", err)
	}
	if len(state.GrantKey) == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "store holds no engine state to restore")
	}

	authority, err := grant.Restore(e.grantIssuer, e.grantAudience, state.GrantKey, e.now)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigInvalid, "restore grant authority", err)
	}
	e.authority = authority

	manager, err := l.NewResource(TicketResourceName)
	if err != nil {
		return nil, err
	}
	e.manager = manager

	e.tickets = registry.New(state.NextTicketID)
	for _, record := range state.Tickets {
		t := ticket.Ticket{ID: record.ID, Level: record.Level, LastThrow: record.LastThrow}
		if err := ticket.Validate(t); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal,
				"restore ticket "+strconv.FormatUint(record.ID, 10), err)
		}
		e.tickets.Commit(t)
	}

	e.vault = vault.New(l.Coin())
	if state.VaultBalance > 0 {
		funds, err := l.MintCoin(state.VaultBalance)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, "refund vault", err)
		}
		if err := e.vault.Put(funds); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, "refund vault", err)
		}
	}

	e.logger.Printf("engine restored tickets=%d balance=%s next_ticket_id=%d",
		e.tickets.Len(), e.vault.Balance(), e.tickets.NextID())
	return e, nil
}

// Close releases the engine's store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// timestamp returns the journal timestamp for the current operation,
// truncated to milliseconds so persisted entries round-trip exactly.
func (e *Engine) timestamp() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}

// authorize resolves the caller's tier and checks it against the ruleset.
// An empty grant token is a public caller; a non-empty token must validate
// and yields the admin tier. Tiers do not nest.
func (e *Engine) authorize(op policy.Operation, grantToken string) error {
	held := policy.TierPublic
	if strings.TrimSpace(grantToken) != "" {
		if _, err := e.authority.Validate(grantToken); err != nil {
			return err
		}
		held = policy.TierAdmin
	}
	if !e.rules.Allowed(op, held) {
		return unauthorized(op)
	}
	return nil
}

func unauthorized(op policy.Operation) error {
	return apperrors.WithMetadata(apperrors.CodeUnauthorized,
		"caller lacks the capability required for "+string(op),
		map[string]string{"Operation": string(op)})
}

// ticketFromProof validates a presented proof and resolves the ticket it
// asserts. The proof must be of the ticket class and carry exactly one id.
func (e *Engine) ticketFromProof(p ledger.Proof) (ticket.Ticket, error) {
	if p.Resource() != e.manager.Resource() {
		return ticket.Ticket{}, apperrors.WithMetadata(apperrors.CodeInvalidProof,
			"proof is not of the ticket class",
			map[string]string{
				"Expected": string(e.manager.Resource()),
				"Got":      string(p.Resource()),
			})
	}
	if p.Count() != 1 {
		return ticket.Ticket{}, apperrors.WithMetadata(apperrors.CodeInvalidProofCardinality,
			"proof must assert exactly one ticket",
			map[string]string{"Count": strconv.Itoa(p.Count())})
	}
	return e.tickets.Get(p.IDs()[0])
}

// coinPayment validates that a payment bucket exists and is of the coin
// class the vault accepts.
func (e *Engine) coinPayment(payment *ledger.Bucket) error {
	if payment == nil {
		return apperrors.New(apperrors.CodeInvalidAsset, "payment bucket is required")
	}
	if payment.Resource() != e.vault.Resource() {
		return apperrors.WithMetadata(apperrors.CodeInvalidAsset,
			"payment is not of the accepted resource class",
			map[string]string{
				"Expected": string(e.vault.Resource()),
				"Got":      string(payment.Resource()),
			})
	}
	return nil
}

// endSpan records the operation outcome on the span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}
