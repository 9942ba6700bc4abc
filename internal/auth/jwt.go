// Package auth provides the token, password and request-authentication
// primitives behind /token and the protected /favorites routes.
//
// AUTHENTICATION FLOW:
//  1. Client signs up with POST /user (password stored as a bcrypt hash)
//  2. Client exchanges email + password at POST /token for a signed JWT
//  3. Client sends "Authorization: Bearer <token>" on protected routes
//  4. RequireAuth validates the token and puts the user ID in the request
//     context; handlers scope every query to that ID
//
// Tokens are stateless: verifying one needs only the secret, never the
// database. There is no revocation list, so a token stays valid until exp.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
	"github.com/sakif/starwars-api/internal/apperror"
)

// Issuer is written into every token and required on validation.
const Issuer = "starwars-api"

// DefaultTokenTTL is the access token lifetime when none is configured.
const DefaultTokenTTL = 15 * time.Minute

// TokenService handles JWT creation and validation with a single HMAC key.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// TTL reports how long freshly issued tokens stay valid.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

type claims struct {
	jwt.RegisteredClaims
}

// Generate issues a token for userID using the configured lifetime.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, s.ttl)
}

// GenerateWithDuration issues a token that expires after d. Tests use a
// negative d to produce an already-expired token.
//
// Each token carries a fresh jti, so two tokens issued for the same user in
// the same second still differ.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses tokenStr and returns the user ID in its subject.
//
// Every failure (bad signature, wrong algorithm, wrong issuer, expired, no
// subject) wraps apperror.ErrUnauthorized.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			// Rejecting non-HMAC methods blocks the "alg: none" and
			// RS256-with-public-key-as-secret attacks.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: %w", apperror.Unauthorized("token expired"))
		}
		return "", fmt.Errorf("auth: %w: %v", apperror.Unauthorized("invalid token"), err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: %w", apperror.Unauthorized("invalid token claims"))
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: %w", apperror.Unauthorized("token has no subject"))
	}

	return c.Subject, nil
}
