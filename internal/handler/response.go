// Package handler contains the HTTP handlers. Handlers decode and validate
// the request, call a service, and turn the result (or the apperror it
// returned) into a JSON response. They hold no business rules.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/apperror"
)

// ErrorResponse is the body of every non-2xx response.
//
//	{"error": "validation_error", "message": "email is required"}
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind, e.g. "not_found"
	Message string `json:"message"` // human-readable description
}

// MessageResponse is the body of successful writes.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// TokenResponse is the body of a successful POST /token.
type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps err onto a status code and error kind.
//
//	apperror.ErrValidation          → 400 validation_error
//	apperror.ErrInvalidCredentials  → 401 unauthorized
//	apperror.ErrUnauthorized        → 401 unauthorized
//	apperror.ErrNotFound            → 404 not_found
//	apperror.ErrConflict            → 409 conflict
//	anything else                   → 500 internal_error
//
// Only AppError messages reach the client. Anything else is logged and
// replaced by a generic message so driver errors never leak.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status, kind := classify(err)
		if status != http.StatusInternalServerError {
			writeJSON(w, status, ErrorResponse{Error: kind, Message: appErr.Message})
			return
		}
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrInvalidCredentials), errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
