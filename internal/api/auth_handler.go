package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/geotask-api/internal/api/shared"
	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/service/auth"
	"github.com/phrazzld/geotask-api/internal/store"
)

// AuthHandler handles account registration and token issuance.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	l *slog.Logger,
) *AuthHandler {
	if l == nil {
		l = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		logger:           l.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if !errors.Is(err, store.ErrEmailExists) {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	h.respondWithTokens(w, r, http.StatusCreated, domain.Identity{UserID: user.ID, Email: user.Email})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), domain.NormalizeEmail(req.Email))
	if err != nil {
		if store.IsNotFoundError(err) {
			HandleAPIError(w, r, auth.ErrInvalidCredentials, "")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	if !user.Active {
		log.Warn("login attempt for inactive account", slog.String("user_id", user.ID.String()))
		HandleAPIError(w, r, auth.ErrInvalidCredentials, "")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		HandleAPIError(w, r, auth.ErrInvalidCredentials, "")
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, domain.Identity{UserID: user.ID, Email: user.Email})
}

// RefreshToken handles POST /api/auth/refresh. The account must still exist
// and be active.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	if !user.Active {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Warn("refresh attempt for inactive account", slog.String("user_id", user.ID.String()))
		HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, domain.Identity{UserID: user.ID, Email: user.Email})
}

func (h *AuthHandler) respondWithTokens(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	identity domain.Identity,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	access, err := h.jwtService.GenerateToken(r.Context(), identity)
	if err != nil {
		log.Error("failed to generate access token", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), identity)
	if err != nil {
		log.Error("failed to generate refresh token", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		UserID:       identity.UserID,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
