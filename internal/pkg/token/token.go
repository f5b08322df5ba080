// Package token issues and verifies the bearer tokens that carry a
// caller's identity between requests. Tokens are HS256-signed compact
// JWTs: signed, not encrypted, so anyone holding one can read its claims.
//
// The signing secret is the system's primary trust boundary: every
// verifier holds the same symmetric key, and compromising it forges any
// identity until the secret is rotated. There is no server-side token
// record and no revocation; a token is valid until its embedded expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// MinSecretLen is the minimum secret size in bytes. HMAC-SHA256 needs a
// 256-bit key; anything shorter is a configuration error, not a weaker
// deployment.
const MinSecretLen = 32

var (
	// ErrMalformed means the token could not be parsed, or its claims
	// are structurally invalid (unknown role, missing subject).
	ErrMalformed = errors.New("token malformed")
	// ErrBadSignature means the signature does not match the payload.
	ErrBadSignature = errors.New("token signature invalid")
	// ErrExpired means the signature is valid but the token is past its
	// expiry. Reported only after signature verification: an exp claim
	// is untrusted until the signature proves it.
	ErrExpired = errors.New("token expired")
)

// Claims is the verified claim set of a token.
type Claims struct {
	Subject   string
	Role      domain.Role
	Email     string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Aux holds the optional, non-sensitive claims embedded alongside the
// subject and role.
type Aux struct {
	Email    string
	Username string
}

type jwtClaims struct {
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens with a single shared secret and a
// fixed TTL. It is immutable after construction and safe for unlimited
// concurrent use.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewCodec builds a Codec. A secret shorter than MinSecretLen is
// rejected so that a weak key fails at startup, never at request time.
func NewCodec(secret, issuer, audience string, ttl time.Duration) (*Codec, error) {
	if len(secret) < MinSecretLen {
		return nil, errors.New("token: signing secret must be at least 32 bytes (256 bits)")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Codec{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}, nil
}

// TTL returns the fixed issuance-to-expiry duration.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token for the subject. Expiry is always
// now + TTL; there is no sliding expiration.
func (c *Codec) Issue(subject string, role domain.Role, aux Aux, now time.Time) (string, error) {
	claims := jwtClaims{
		Role:     string(role),
		Email:    aux.Email,
		Username: aux.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	if c.audience != "" {
		claims.Audience = jwt.ClaimStrings{c.audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token string against the codec's secret
// at the given instant. A token verified at exactly its expiry instant
// is already expired. The jwt library compares signatures in constant
// time and verifies the signature before validating any claim.
func (c *Codec) Verify(tokenStr string, now time.Time) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	if c.audience != "" {
		opts = append(opts, jwt.WithAudience(c.audience))
	}

	parsed := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, parsed, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}

	if parsed.Subject == "" {
		return nil, ErrMalformed
	}
	role, err := domain.ParseRole(parsed.Role)
	if err != nil {
		return nil, ErrMalformed
	}

	claims := &Claims{
		Subject:  parsed.Subject,
		Role:     role,
		Email:    parsed.Email,
		Username: parsed.Username,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, nil
}
