package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/events"
	"github.com/phrazzld/geotask-api/internal/platform/logger"
	"github.com/phrazzld/geotask-api/internal/store"
)

// CreateTaskParams carries the caller-supplied fields of a new task.
type CreateTaskParams struct {
	Title       string
	Description string
	Date        time.Time
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	Category    string
	LocationID  *int64
}

// TaskLifecycleManager authorizes and executes task operations on behalf of
// an authenticated identity.
type TaskLifecycleManager interface {
	// Create stores a task owned by the caller. Status defaults to pending and
	// priority to medium. The location reference is not checked.
	Create(ctx context.Context, caller domain.Identity, params CreateTaskParams) (*domain.Task, error)

	// ListOwned returns only the tasks owned by ownerID.
	ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// GetByID returns any task regardless of owner.
	// Returns store.ErrTaskNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update applies patch semantics to a task the caller owns. Any valid
	// status is accepted.
	Update(ctx context.Context, caller domain.Identity, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Complete sets the status of a task the caller owns to completed.
	// Completing a completed task succeeds without writing.
	Complete(ctx context.Context, caller domain.Identity, id int64) (*domain.Task, error)

	// Delete removes a task the caller owns. An unknown id yields false.
	Delete(ctx context.Context, caller domain.Identity, id int64) (bool, error)
}

type taskLifecycleManagerImpl struct {
	tasks     store.TaskStore
	locations store.LocationStore
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewTaskLifecycleManager creates a TaskLifecycleManager. emitter may be nil,
// in which case no events are published.
func NewTaskLifecycleManager(
	tasks store.TaskStore,
	locations store.LocationStore,
	emitter events.EventEmitter,
	l *slog.Logger,
) (TaskLifecycleManager, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if locations == nil {
		return nil, domain.NewValidationError("locations", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}

	return &taskLifecycleManagerImpl{
		tasks:     tasks,
		locations: locations,
		emitter:   emitter,
		logger:    l.With(slog.String("component", "task_lifecycle")),
	}, nil
}

// Create implements TaskLifecycleManager.Create
func (m *taskLifecycleManagerImpl) Create(
	ctx context.Context,
	caller domain.Identity,
	params CreateTaskParams,
) (*domain.Task, error) {
	if caller.IsZero() {
		return nil, ErrMissingIdentity
	}

	task, err := domain.NewTask(domain.NewTaskParams{
		Title:       params.Title,
		Description: params.Description,
		Date:        params.Date,
		Status:      params.Status,
		Priority:    params.Priority,
		Category:    params.Category,
		OwnerID:     caller.UserID,
		LocationID:  params.LocationID,
	})
	if err != nil {
		return nil, err
	}

	if err := m.tasks.Create(ctx, task); err != nil {
		if domain.IsValidationError(err) {
			return nil, err
		}
		return nil, NewServiceError("create_task", "failed to save task", err)
	}

	m.enrich(ctx, task)
	m.emit(ctx, events.TaskCreated, caller, task)
	return task, nil
}

// ListOwned implements TaskLifecycleManager.ListOwned
func (m *taskLifecycleManagerImpl) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := m.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewServiceError("list_owned", "failed to list tasks", err)
	}

	m.enrichAll(ctx, tasks)
	return tasks, nil
}

// GetByID implements TaskLifecycleManager.GetByID
func (m *taskLifecycleManagerImpl) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := m.load(ctx, "get_task", id)
	if err != nil {
		return nil, err
	}

	m.enrich(ctx, task)
	return task, nil
}

// Update implements TaskLifecycleManager.Update
func (m *taskLifecycleManagerImpl) Update(
	ctx context.Context,
	caller domain.Identity,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	task, err := m.loadOwned(ctx, "update_task", caller, id)
	if err != nil {
		return nil, err
	}

	if err := task.ApplyPatch(patch); err != nil {
		return nil, err
	}

	if err := m.save(ctx, "update_task", task); err != nil {
		return nil, err
	}

	m.enrich(ctx, task)
	m.emit(ctx, events.TaskUpdated, caller, task)
	return task, nil
}

// Complete implements TaskLifecycleManager.Complete
func (m *taskLifecycleManagerImpl) Complete(
	ctx context.Context,
	caller domain.Identity,
	id int64,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	task, err := m.loadOwned(ctx, "complete_task", caller, id)
	if err != nil {
		return nil, err
	}

	if task.Complete() {
		if err := m.save(ctx, "complete_task", task); err != nil {
			return nil, err
		}
		m.emit(ctx, events.TaskCompleted, caller, task)
	} else {
		log.Debug("task already completed", slog.Int64("task_id", id))
	}

	m.enrich(ctx, task)
	return task, nil
}

// Delete implements TaskLifecycleManager.Delete
func (m *taskLifecycleManagerImpl) Delete(ctx context.Context, caller domain.Identity, id int64) (bool, error) {
	task, err := m.loadOwned(ctx, "delete_task", caller, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	deleted, err := m.tasks.Delete(ctx, id)
	if err != nil {
		return false, NewServiceError("delete_task", "failed to delete task", err)
	}

	if deleted {
		m.emit(ctx, events.TaskDeleted, caller, &domain.Task{ID: task.ID, OwnerID: task.OwnerID})
	}
	return deleted, nil
}

func (m *taskLifecycleManagerImpl) load(ctx context.Context, operation string, id int64) (*domain.Task, error) {
	task, err := m.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		return nil, NewServiceError(operation, "failed to load task", err)
	}
	return task, nil
}

// loadOwned loads the task and checks that caller owns it.
func (m *taskLifecycleManagerImpl) loadOwned(
	ctx context.Context,
	operation string,
	caller domain.Identity,
	id int64,
) (*domain.Task, error) {
	if caller.IsZero() {
		return nil, ErrMissingIdentity
	}

	task, err := m.load(ctx, operation, id)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(caller.UserID) {
		logger.FromContextOrDefault(ctx, m.logger).Warn("task mutation by non-owner",
			slog.String("operation", operation),
			slog.Int64("task_id", id),
			slog.String("caller_id", caller.UserID.String()))
		return nil, ErrNotOwned
	}

	return task, nil
}

func (m *taskLifecycleManagerImpl) save(ctx context.Context, operation string, task *domain.Task) error {
	if err := m.tasks.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrTaskNotFound
		}
		if domain.IsValidationError(err) {
			return err
		}
		return NewServiceError(operation, "failed to save task", err)
	}
	return nil
}

// enrich attaches the referenced location. A dangling or failing lookup
// leaves Location nil.
func (m *taskLifecycleManagerImpl) enrich(ctx context.Context, task *domain.Task) {
	task.Location = nil
	if task.LocationID == nil {
		return
	}

	loc, err := m.locations.GetByID(ctx, *task.LocationID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, m.logger).Warn("failed to load task location",
				slog.Int64("task_id", task.ID),
				slog.Int64("location_id", *task.LocationID),
				slog.String("error", err.Error()))
		}
		return
	}
	task.Location = loc
}

func (m *taskLifecycleManagerImpl) enrichAll(ctx context.Context, tasks []*domain.Task) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, task := range tasks {
		if task.LocationID != nil && !seen[*task.LocationID] {
			seen[*task.LocationID] = true
			ids = append(ids, *task.LocationID)
		}
	}
	if len(ids) == 0 {
		return
	}

	locations, err := m.locations.ListByIDs(ctx, ids)
	if err != nil {
		logger.FromContextOrDefault(ctx, m.logger).Warn("failed to load task locations",
			slog.Int("count", len(ids)),
			slog.String("error", err.Error()))
		return
	}

	byID := make(map[int64]*domain.Location, len(locations))
	for _, loc := range locations {
		byID[loc.ID] = loc
	}
	for _, task := range tasks {
		if task.LocationID != nil {
			task.Location = byID[*task.LocationID]
		}
	}
}

// emit publishes a lifecycle event. Failures are logged and never undo the
// mutation.
func (m *taskLifecycleManagerImpl) emit(
	ctx context.Context,
	eventType string,
	caller domain.Identity,
	task *domain.Task,
) {
	if m.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, m.logger)

	var payload interface{}
	if eventType != events.TaskDeleted {
		payload = task
	}

	event, err := events.NewTaskEvent(eventType, task.ID, task.OwnerID, caller.UserID, payload)
	if err != nil {
		log.Error("failed to build task event",
			slog.String("event_type", eventType),
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return
	}

	if err := m.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit task event",
			slog.String("event_type", eventType),
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
	}
}
