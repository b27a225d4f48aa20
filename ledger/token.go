package ledger

// Token is a non-fungible bearer instrument: possession of the token is
// ownership of the ids it carries. The token's identity is immutable; the
// mutable leveling state lives in the engine's registry keyed by id.
type Token struct {
	resource ResourceID
	ids      []uint64
}

// Resource returns the token's resource class.
func (t *Token) Resource() ResourceID {
	return t.resource
}

// IDs returns a copy of the ids the token carries.
func (t *Token) IDs() []uint64 {
	out := make([]uint64, len(t.ids))
	copy(out, t.ids)
	return out
}

// Count returns how many ids the token carries.
func (t *Token) Count() int {
	return len(t.ids)
}

// Present derives a proof of ownership without consuming the token.
func (t *Token) Present() Proof {
	return Proof{resource: t.resource, ids: t.IDs()}
}

// Proof is a non-consuming assertion of token ownership. Operations that
// mutate ticket state accept a proof, validate its class and cardinality,
// and leave custody with the caller.
type Proof struct {
	resource ResourceID
	ids      []uint64
}

// Resource returns the resource class the proof asserts.
func (p Proof) Resource() ResourceID {
	return p.resource
}

// IDs returns a copy of the asserted ids.
func (p Proof) IDs() []uint64 {
	out := make([]uint64, len(p.ids))
	copy(out, p.ids)
	return out
}

// Count returns the proof's cardinality.
func (p Proof) Count() int {
	return len(p.ids)
}
