// Package service holds the business rules between the HTTP handlers and the
// store. Services take repository interfaces, so tests swap in in-memory
// fakes, and they return apperror values the handlers map to HTTP statuses.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/repository"
)

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// TokenResult is what a successful login returns to the client.
type TokenResult struct {
	Token  string
	UserID string
}

// IssueToken checks email and password and mints a token for the matching
// user.
//
// An unknown email and a wrong password both fail with
// apperror.ErrInvalidCredentials and the same message. The unknown-email
// path still runs a bcrypt comparison so the two cases take the same time.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (*TokenResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			_ = s.passwords.VerifyDummy(password)
			s.logger.Info("login rejected", slog.String("reason", "unknown email"))
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Info("login rejected",
				slog.String("userID", user.ID),
				slog.String("reason", "wrong password"),
			)
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: verifying password for user %s: %w", user.ID, err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("token issued", slog.String("userID", user.ID))

	return &TokenResult{Token: token, UserID: user.ID}, nil
}

// ValidateToken returns the user ID a token was issued for.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return userID, nil
}

// NormalizeEmail trims surrounding whitespace and lowercases, so signup and
// login agree on the stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
