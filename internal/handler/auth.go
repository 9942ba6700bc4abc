package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/service"
)

// TokenIssuer is the part of service.AuthService the handlers use.
type TokenIssuer interface {
	IssueToken(ctx context.Context, email, password string) (*service.TokenResult, error)
}

// AuthHandler serves POST /token.
type AuthHandler struct {
	auth   TokenIssuer
	logger *slog.Logger
}

func NewAuthHandler(auth TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type tokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleToken exchanges email + password for a bearer token.
//
// A wrong password and an unknown email produce the same 401 body.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.auth.IssueToken(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: res.Token, UserID: res.UserID})
}
