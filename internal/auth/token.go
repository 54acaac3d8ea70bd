package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified subject of a request, as of token issuance.
type Identity struct {
	ID       uuid.UUID
	Email    string
	Username string
}

// Claims embeds the registered claim set and carries the account's email and
// username so protected handlers need no store lookup.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Codec issues and verifies self-contained HS256 tokens. The secret comes
// from configuration; the codec never generates or stores it.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec with the standard 24h token lifetime.
func NewCodec(secret []byte) Codec {
	return Codec{secret: secret, ttl: TokenTTL}
}

// NewCodecTTL returns a Codec with a custom token lifetime.
func NewCodecTTL(secret []byte, ttl time.Duration) Codec {
	return Codec{secret: secret, ttl: ttl}
}

// Issue signs a token for the given identity.
func (c Codec) Issue(id uuid.UUID, email, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email:    email,
		Username: username,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// Signature mismatch, malformed structure, an unexpected signing method and
// expiry all fail the same way.
func (c Codec) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return Identity{ID: id, Email: claims.Email, Username: claims.Username}, nil
}
