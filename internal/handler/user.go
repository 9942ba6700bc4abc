package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/starwars-api/internal/model"
)

// UserService is the part of service.UserService the handlers use.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type UserHandler struct {
	users  UserService
	logger *slog.Logger
}

func NewUserHandler(users UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// signupRequest fields are validated in declaration order, so a body
// missing both reports the email first.
type signupRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,max=72"`
}

// HandleList handles GET /user. Password hashes never leave the service:
// the response goes through model.SerializeUsers.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SerializeUsers(users))
}

// HandleGet handles GET /user/{id}.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SerializeUser(*user))
}

// HandleCreate handles POST /user.
//
//	{"email": "luke@tatooine.sw", "password": "usetheforce"}
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.users.Signup(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "user created successfully"})
}
