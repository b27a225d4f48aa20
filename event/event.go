// Package event defines the journal entries the engine records for every
// committed operation.
//
// The journal is append-only and ordered by sequence number. Entries are
// small denormalized records: enough to reconstruct what happened without
// replaying it. Read them back through the store's ListEvents, which accepts
// an AIP-160 filter expression parsed by the filter subpackage.
package event

import (
	"time"

	"github.com/louisbranch/radicex/ledger"
)

// Type names one kind of journal entry.
type Type string

const (
	// TypeInstantiated records engine creation.
	TypeInstantiated Type = "instantiated"
	// TypeTicketBought records a public ticket purchase.
	TypeTicketBought Type = "ticket_bought"
	// TypeRoundPlayed records a resolved round.
	TypeRoundPlayed Type = "round_played"
	// TypeTicketReinitialized records an exhausted ticket returning to play.
	TypeTicketReinitialized Type = "ticket_reinitialized"
	// TypePrizeRedeemed records a prize payout.
	TypePrizeRedeemed Type = "prize_redeemed"
	// TypeDeposited records a vault credit.
	TypeDeposited Type = "deposited"
	// TypeTicketBurned records a ticket leaving circulation.
	TypeTicketBurned Type = "ticket_burned"
	// TypeTicketMinted records an operator minting a ticket directly.
	TypeTicketMinted Type = "ticket_minted"
	// TypeVaultDrained records an operator draining the vault.
	TypeVaultDrained Type = "vault_drained"
)

// Event is one journal entry. TicketID is zero for entries that are not
// scoped to a ticket, and Amount is zero when no value moved.
type Event struct {
	ID          uint64
	Type        Type
	TicketID    uint64
	Level       int
	Amount      ledger.Amount
	Description string
	Timestamp   time.Time
}
