// Package grant implements the operator capability as a signed bearer token.
//
// An authority is created once, at engine instantiation. It generates an
// Ed25519 keypair, signs a single grant token, and discards the signing key
// before returning, so no further grants can ever be issued for that
// authority. Whoever holds the token string holds the capability; the engine
// keeps only the verification key, which is also what gets persisted so
// grants stay valid across restarts.
package grant

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/radicex/errors"
	"github.com/louisbranch/radicex/internal/id"
)

// subject is the registered subject claim of every operator grant.
const subject = "operator"

// Claims captures the validated claims of an operator grant.
type Claims struct {
	Issuer    string
	Audience  []string
	Subject   string
	JWTID     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// grantClaims is the internal claims type used for JWT parsing.
type grantClaims struct {
	jwt.RegisteredClaims
}

// Authority verifies operator grants for one engine instance.
type Authority struct {
	issuer   string
	audience string
	key      ed25519.PublicKey
	now      func() time.Time
}

// NewAuthority creates a verification authority and issues its single grant.
// The signing key never outlives the call.
func NewAuthority(issuer, audience string, now func() time.Time) (*Authority, string, error) {
	issuer = strings.TrimSpace(issuer)
	audience = strings.TrimSpace(audience)
	if issuer == "" {
		return nil, "", errors.New("grant issuer is required")
	}
	if audience == "" {
		return nil, "", errors.New("grant audience is required")
	}
	if now == nil {
		now = time.Now
	}

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, "", fmt.Errorf("generate grant keypair: %w", err)
	}

	jti, err := id.NewID()
	if err != nil {
		return nil, "", fmt.Errorf("generate grant id: %w", err)
	}

	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Audience: jwt.ClaimStrings{audience},
			Subject:  subject,
			ID:       jti,
			IssuedAt: jwt.NewNumericDate(now().UTC()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(private)
	if err != nil {
		return nil, "", fmt.Errorf("sign grant: %w", err)
	}

	authority := &Authority{
		issuer:   issuer,
		audience: audience,
		key:      public,
		now:      now,
	}
	return authority, token, nil
}

// Restore rebuilds a verification authority from a persisted public key.
func Restore(issuer, audience string, key ed25519.PublicKey, now func() time.Time) (*Authority, error) {
	issuer = strings.TrimSpace(issuer)
	audience = strings.TrimSpace(audience)
	if issuer == "" {
		return nil, errors.New("grant issuer is required")
	}
	if audience == "" {
		return nil, errors.New("grant audience is required")
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("grant verification key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return &Authority{
		issuer:   issuer,
		audience: audience,
		key:      key,
		now:      now,
	}, nil
}

// VerificationKey returns the public key used to verify grants.
func (a *Authority) VerificationKey() ed25519.PublicKey {
	out := make(ed25519.PublicKey, len(a.key))
	copy(out, a.key)
	return out
}

// Validate verifies a grant token and returns its claims. Grants carry no
// expiry by default; when one is present it is honored.
func (a *Authority) Validate(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.New(apperrors.CodeUnauthorized, "grant is required")
	}

	var parsed grantClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return a.key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != a.issuer {
		return Claims{}, apperrors.WithMetadata(
			apperrors.CodeUnauthorized,
			"grant issuer mismatch",
			map[string]string{"Field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, a.audience) {
		return Claims{}, apperrors.WithMetadata(
			apperrors.CodeUnauthorized,
			"grant audience mismatch",
			map[string]string{"Field": "audience"},
		)
	}
	if parsed.Subject != subject {
		return Claims{}, apperrors.WithMetadata(
			apperrors.CodeUnauthorized,
			"grant subject mismatch",
			map[string]string{"Field": "subject"},
		)
	}
	if parsed.ID == "" {
		return Claims{}, apperrors.New(apperrors.CodeUnauthorized, "grant jti is required")
	}

	now := a.now().UTC()
	if parsed.ExpiresAt != nil {
		exp := parsed.ExpiresAt.Time.UTC()
		if !exp.After(now) {
			return Claims{}, apperrors.New(apperrors.CodeUnauthorized, "grant is expired")
		}
	}
	if parsed.NotBefore != nil {
		nbf := parsed.NotBefore.Time.UTC()
		if now.Before(nbf) {
			return Claims{}, apperrors.New(apperrors.CodeUnauthorized, "grant not active yet")
		}
	}

	claims := Claims{
		Issuer:   parsed.Issuer,
		Audience: []string(parsed.Audience),
		Subject:  parsed.Subject,
		JWTID:    parsed.ID,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeUnauthorized, "grant signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeUnauthorized, "grant alg is invalid")
	}
	return apperrors.New(apperrors.CodeUnauthorized, "grant is invalid")
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}
