// Package identity verifies bearer credentials and derives the caller
// identity from their claims. Verification is stateless: claims in,
// identity or error out, nothing retained between requests.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrazmi/taskflow/sdk/environment"
)

// ErrInvalidToken is returned for any verification failure. The specific
// cause (bad signature, expired, malformed) is not distinguished to the
// caller.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller derived from a verified credential.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// Options is the exportable configuration struct.
type Options struct {
	Secret string `env:"JWT_SECRET" default:"dev_secret_change_me"`
}

// LoadOptions reads identity configuration from environment variables.
func LoadOptions(prefix string) (Options, error) {
	var opts Options
	if err := environment.ParseEnvTags(prefix, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing identity config: %w", err)
	}
	return opts, nil
}

// claims is the token payload. The subject carries the user id.
type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Parse verifies the token signature and expiry against the secret and
// returns the identity carried in its claims.
func Parse(tokenString, secret string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	if c.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
	}, nil
}

// Sign mints a token for the given identity. Tokens are normally issued by
// the external auth provider; this is used by tests and dev tooling.
func Sign(ident Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Email: ident.Email,
		Name:  ident.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
