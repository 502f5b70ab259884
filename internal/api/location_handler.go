package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/geotask-api/internal/api/shared"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/service"
)

// LocationHandler serves the location endpoints. None of them require an
// identity.
type LocationHandler struct {
	registry service.LocationRegistry
	logger   *slog.Logger
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(registry service.LocationRegistry, l *slog.Logger) *LocationHandler {
	if l == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LocationHandler")
	}
	return &LocationHandler{
		registry: registry,
		logger:   l.With(slog.String("component", "location_handler")),
	}
}

// Register handles POST /api/locations.
func (h *LocationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterLocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	loc, err := h.registry.Register(r.Context(), req.ToParams())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("location registered", slog.Int64("location_id", loc.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, locationToResponse(loc))
}

// List handles GET /api/locations.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.registry.ListAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, locationsToResponse(locations))
}

// Update handles PUT /api/locations/{id}.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateLocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	loc, err := h.registry.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, locationToResponse(loc))
}

// Delete handles DELETE /api/locations/{id}. Tasks referencing the location
// are left untouched.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deleted, err := h.registry.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeletedResponse{Deleted: deleted})
}
