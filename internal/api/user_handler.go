package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/phrazzld/geotask-api/internal/api/shared"
	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/store"
)

// UserHandler serves the account endpoints. Every route requires an
// identity; only the account holder may change or deactivate an account.
type UserHandler struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users store.UserStore, l *slog.Logger) *UserHandler {
	if l == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		users:  users,
		logger: l.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /api/users and returns active accounts.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	if _, ok := requireIdentity(w, r, log); !ok {
		return
	}

	users, err := h.users.ListActive(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// Get handles GET /api/users/{id}. Inactive accounts read as not found.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	if _, ok := requireIdentity(w, r, log); !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.loadActive(r, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Update handles PUT /api/users/{id} and renames the caller's own account.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := h.loadOwnAccount(w, r, log)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := user.Rename(req.Name); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.users.Update(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user renamed", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Deactivate handles DELETE /api/users/{id}. The row is kept with
// active=false, which blocks login and token refresh.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := h.loadOwnAccount(w, r, log)
	if !ok {
		return
	}

	user.Deactivate()
	if err := h.users.Update(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user deactivated", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, DeletedResponse{Deleted: true})
}

// loadOwnAccount resolves the path id, checks it is the caller's and loads
// the active account, writing the error response on failure.
func (h *UserHandler) loadOwnAccount(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (*domain.User, bool) {
	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return nil, false
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	if id != identity.UserID {
		log.Warn("account change by another user",
			slog.String("user_id", id.String()),
			slog.String("caller_id", identity.UserID.String()))
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}

	user, err := h.loadActive(r, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return user, true
}

func (h *UserHandler) loadActive(r *http.Request, id uuid.UUID) (*domain.User, error) {
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}
