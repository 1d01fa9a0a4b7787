package internal

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = time.Hour

var errBadToken = errors.New("invalid token")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken signs a fresh identity assertion for email, valid for one
// hour. There is no refresh; callers re-issue when the token expires.
func IssueToken(secret, email string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "contesthub",
		},
	})
	return tok.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the embedded
// claims. All failure modes collapse into a single error; the caller
// only ever responds with an unauthenticated status.
func ParseToken(secret, raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errBadToken
	}
	cl, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errBadToken
	}
	return cl, nil
}
