package policy

import "testing"

func TestDefaultRulesetClassification(t *testing.T) {
	rules := Default()

	tests := []struct {
		op   Operation
		want Tier
	}{
		{OpBuyTicket, TierPublic},
		{OpPlayRound, TierPublic},
		{OpReinitTicket, TierPublic},
		{OpRedeemPrize, TierPublic},
		{OpDeposit, TierPublic},
		{OpBurnTicket, TierPublic},
		{OpAdminMintTicket, TierAdmin},
		{OpWithdrawAll, TierAdmin},
		{OpRollDice, TierInternal},
	}
	for _, tc := range tests {
		if got := rules.TierOf(tc.op); got != tc.want {
			t.Fatalf("expected %s to require %s, got %s", tc.op, tc.want, got)
		}
	}
}

func TestAllowed(t *testing.T) {
	rules := Default()

	tests := []struct {
		name string
		op   Operation
		held Tier
		want bool
	}{
		{"public op without credential", OpPlayRound, TierPublic, true},
		{"public op with admin grant", OpDeposit, TierAdmin, true},
		{"admin op without credential", OpWithdrawAll, TierPublic, false},
		{"admin op with admin grant", OpWithdrawAll, TierAdmin, true},
		{"admin op from internal context", OpAdminMintTicket, TierInternal, false},
		{"internal op without credential", OpRollDice, TierPublic, false},
		{"internal op with admin grant", OpRollDice, TierAdmin, false},
		{"internal op from internal context", OpRollDice, TierInternal, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rules.Allowed(tc.op, tc.held); got != tc.want {
				t.Fatalf("expected Allowed(%s, %s) = %v, got %v", tc.op, tc.held, tc.want, got)
			}
		})
	}
}

func TestUnclassifiedOperationIsOpen(t *testing.T) {
	rules := Default()

	// Operations never registered in the deny list fall back to the open
	// default and are reachable by unprivileged callers.
	const hypothetical Operation = "transfer_ownership"
	if got := rules.TierOf(hypothetical); got != TierPublic {
		t.Fatalf("expected unclassified operation to require public tier, got %s", got)
	}
	if !rules.Allowed(hypothetical, TierPublic) {
		t.Fatal("expected unclassified operation to be reachable without a credential")
	}
}

func TestDenyRegistersAndClears(t *testing.T) {
	rules := Default()

	const op Operation = "rotate_grant"
	rules.Deny(op, TierAdmin)
	if rules.Allowed(op, TierPublic) {
		t.Fatal("expected denied operation to reject unprivileged caller")
	}
	if !rules.Allowed(op, TierAdmin) {
		t.Fatal("expected denied operation to accept admin caller")
	}

	rules.Deny(op, TierPublic)
	if !rules.Allowed(op, TierPublic) {
		t.Fatal("expected cleared operation to be open again")
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierPublic, "public"},
		{TierAdmin, "admin"},
		{TierInternal, "internal"},
	}
	for _, tc := range tests {
		if got := tc.tier.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
