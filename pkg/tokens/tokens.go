package tokens

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TTL is the fixed session lifetime. There is no refresh flow; clients log
// in again once the token expires.
const TTL = time.Hour

var ErrInvalidToken = errors.New("invalid token")

type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func Issue(userID uuid.UUID, email, role string, secret []byte) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse verifies a raw Authorization header value. Clients send the token
// either bare or with a "Bearer " prefix; the prefix is stripped first.
func Parse(raw string, secret []byte) (*SessionClaims, error) {
	tokenStr := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
