package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/geotask-api/internal/api/shared"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/service"
)

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	lifecycle service.TaskLifecycleManager
	matcher   service.ProximityMatcher
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	lifecycle service.TaskLifecycleManager,
	matcher service.ProximityMatcher,
	l *slog.Logger,
) *TaskHandler {
	if l == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		lifecycle: lifecycle,
		matcher:   matcher,
		logger:    l.With(slog.String("component", "task_handler")),
	}
}

// Nearby handles GET /api/tasks/nearby?lat=&lon=. It requires no identity and
// returns tasks of every owner.
func (h *TaskHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tasks, err := h.matcher.Nearby(r.Context(), q.Get("lat"), q.Get("lon"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// List handles GET /api/tasks and returns the caller's own tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	tasks, err := h.lifecycle.ListOwned(r.Context(), identity.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	_, id, ok := handleIdentityAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.lifecycle.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	params, err := req.ToParams()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.lifecycle.Create(r.Context(), identity, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, id, ok := handleIdentityAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.lifecycle.Update(r.Context(), identity, id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Complete handles PUT /api/tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, id, ok := handleIdentityAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.lifecycle.Complete(r.Context(), identity, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, id, ok := handleIdentityAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	deleted, err := h.lifecycle.Delete(r.Context(), identity, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeletedResponse{Deleted: deleted})
}
