// Package policy classifies engine operations into access tiers.
//
// The ruleset is a deny list. Operations carry no classification by
// default: looking up an operation that was never registered yields
// TierPublic, so every privileged operation must be denied explicitly
// at registration time.
package policy

// Tier is the access level required to invoke an operation.
type Tier int

const (
	// TierPublic is the open default: any caller may invoke the operation.
	TierPublic Tier = iota
	// TierAdmin restricts the operation to callers presenting the operator grant.
	TierAdmin
	// TierInternal restricts the operation to the engine itself. No external
	// credential satisfies it.
	TierInternal
)

// String returns the tier name for logs and error metadata.
func (t Tier) String() string {
	switch t {
	case TierAdmin:
		return "admin"
	case TierInternal:
		return "internal"
	default:
		return "public"
	}
}

// Operation names one callable entry point of the engine.
type Operation string

// Operations classified by the default ruleset.
const (
	OpBuyTicket       Operation = "buy_ticket"
	OpPlayRound       Operation = "play_round"
	OpReinitTicket    Operation = "reinit_ticket"
	OpRedeemPrize     Operation = "redeem_prize"
	OpDeposit         Operation = "deposit"
	OpBurnTicket      Operation = "burn_ticket"
	OpAdminMintTicket Operation = "admin_mint_ticket"
	OpWithdrawAll     Operation = "withdraw_all"
	OpRollDice        Operation = "roll_dice"
)

// Ruleset holds the deny list mapping operations to their required tier.
type Ruleset struct {
	deny map[Operation]Tier
}

// Default returns the ruleset shipped with the engine: the two operator
// operations require the admin grant and the raw die roll is reachable
// only from inside the engine. Everything else stays open.
func Default() *Ruleset {
	r := &Ruleset{deny: make(map[Operation]Tier)}
	r.Deny(OpAdminMintTicket, TierAdmin)
	r.Deny(OpWithdrawAll, TierAdmin)
	r.Deny(OpRollDice, TierInternal)
	return r
}

// Deny registers the tier required to invoke op. Denying with TierPublic
// removes the restriction.
func (r *Ruleset) Deny(op Operation, tier Tier) {
	if tier == TierPublic {
		delete(r.deny, op)
		return
	}
	r.deny[op] = tier
}

// TierOf returns the tier required to invoke op. Unclassified operations
// fall back to TierPublic.
func (r *Ruleset) TierOf(op Operation) Tier {
	return r.deny[op]
}

// Allowed reports whether a caller holding the given tier may invoke op.
// Tiers do not nest: an admin grant does not open internal operations and
// internal context does not open admin operations.
func (r *Ruleset) Allowed(op Operation, held Tier) bool {
	required := r.TierOf(op)
	if required == TierPublic {
		return true
	}
	return held == required
}
