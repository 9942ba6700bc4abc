package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
)

// contextKey is unexported so no other package can collide with our keys.
type contextKey string

const userIDKey contextKey = "userID"

const unauthorizedBody = `{"error":"unauthorized","message":"valid authentication required"}`

// RequireAuth rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header. Nothing downstream runs on
// rejection, so protected handlers never touch the store for anonymous
// callers.
//
// Usage:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(auth.RequireAuth(tokens))
//	    r.Get("/favorites", h.ListFavorites)
//	})
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", `Bearer realm="`+Issuer+`"`)
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(unauthorizedBody + "\n"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID. Handler tests use it to
// skip the middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user ID stored by RequireAuth.
// The bool is false when the request was not authenticated.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	token, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}
	return tokens.Validate(token)
}

var errNoBearer = apperror.Unauthorized("missing or malformed Authorization header")

// bearerToken pulls the token out of an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errNoBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errNoBearer
	}
	return token, nil
}
