package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Valid task statuses
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further lifecycle transition leaves s.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted
}

// TaskPriority ranks tasks for their owner.
type TaskPriority string

// Valid task priorities
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid reports whether p is one of the known priorities.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Field limits for tasks
const (
	MaxTaskTitleLength       = 100
	MaxTaskDescriptionLength = 250
	MaxTaskCategoryLength    = 50
)

// DateLayout is the wire format of Task.Date.
const DateLayout = "2006-01-02"

// Task validation errors
var (
	ErrEmptyTaskTitle         = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong       = errors.New("task title is too long")
	ErrEmptyTaskDescription   = errors.New("task description cannot be empty")
	ErrTaskDescriptionTooLong = errors.New("task description is too long")
	ErrEmptyTaskDate          = errors.New("task date cannot be empty")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
	ErrInvalidTaskPriority    = errors.New("invalid task priority")
	ErrTaskCategoryTooLong    = errors.New("task category is too long")
	ErrEmptyTaskOwnerID       = errors.New("task owner ID cannot be empty")
)

// Task is a unit of work owned by a user and optionally pinned to a Location.
//
// LocationID is a weak reference: the location may have been deleted since,
// in which case Location stays nil when the task is read back.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        time.Time    `json:"-"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Category    string       `json:"category"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	LocationID  *int64       `json:"location_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Location is populated on reads only and never persisted.
	Location *Location `json:"location,omitempty"`
}

// NewTaskParams carries the fields accepted when creating a task.
// Empty Status and Priority fall back to pending and medium.
type NewTaskParams struct {
	Title       string
	Description string
	Date        time.Time
	Status      TaskStatus
	Priority    TaskPriority
	Category    string
	OwnerID     uuid.UUID
	LocationID  *int64
}

// NewTask builds a validated Task owned by params.OwnerID.
func NewTask(params NewTaskParams) (*Task, error) {
	status := params.Status
	if status == "" {
		status = TaskStatusPending
	}
	priority := params.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Date:        TruncateToDate(params.Date),
		Status:      status,
		Priority:    priority,
		Category:    strings.TrimSpace(params.Category),
		OwnerID:     params.OwnerID,
		LocationID:  params.LocationID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the field invariants of a task.
func (t *Task) Validate() error {
	if t.OwnerID == uuid.Nil {
		return NewValidationError("owner_id", "is required", ErrEmptyTaskOwnerID)
	}

	if t.Title == "" {
		return NewValidationError("title", "is required", ErrEmptyTaskTitle)
	}
	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return NewValidationError("title", "must be at most 100 characters", ErrTaskTitleTooLong)
	}

	if t.Description == "" {
		return NewValidationError("description", "is required", ErrEmptyTaskDescription)
	}
	if utf8.RuneCountInString(t.Description) > MaxTaskDescriptionLength {
		return NewValidationError("description", "must be at most 250 characters", ErrTaskDescriptionTooLong)
	}

	if t.Date.IsZero() {
		return NewValidationError("date", "is required", ErrEmptyTaskDate)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", "must be one of pending, in-progress, completed", ErrInvalidTaskStatus)
	}

	if !t.Priority.IsValid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidTaskPriority)
	}

	if utf8.RuneCountInString(t.Category) > MaxTaskCategoryLength {
		return NewValidationError("category", "must be at most 50 characters", ErrTaskCategoryTooLong)
	}

	return nil
}

// IsOwnedBy reports whether userID owns the task.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.OwnerID == userID
}

// Complete moves the task to the completed state. Completing an already
// completed task leaves it unchanged and reports false.
func (t *Task) Complete() bool {
	if t.Status.IsTerminal() {
		return false
	}
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now().UTC()
	return true
}

// TaskPatch is a partial update of a Task. Nil fields and fields holding
// their zero value ("" or the zero date) are ignored. The owner cannot be
// patched.
type TaskPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Status      *TaskStatus
	Priority    *TaskPriority
	Category    *string
	LocationID  *int64
}

// ApplyPatch applies every recognized, non-empty field of patch and
// re-validates the task. Status may be overwritten with any valid status;
// only Complete follows the lifecycle. On failure the task is restored.
func (t *Task) ApplyPatch(patch TaskPatch) error {
	orig := *t
	changed := false

	if s, ok := nonEmpty(patch.Title); ok {
		t.Title = s
		changed = true
	}
	if s, ok := nonEmpty(patch.Description); ok {
		t.Description = s
		changed = true
	}
	if patch.Date != nil && !patch.Date.IsZero() {
		t.Date = TruncateToDate(*patch.Date)
		changed = true
	}
	if patch.Status != nil && *patch.Status != "" {
		t.Status = *patch.Status
		changed = true
	}
	if patch.Priority != nil && *patch.Priority != "" {
		t.Priority = *patch.Priority
		changed = true
	}
	if s, ok := nonEmpty(patch.Category); ok {
		t.Category = s
		changed = true
	}
	if patch.LocationID != nil && *patch.LocationID != 0 {
		id := *patch.LocationID
		t.LocationID = &id
		changed = true
	}

	if err := t.Validate(); err != nil {
		*t = orig
		return err
	}

	if changed {
		t.UpdatedAt = time.Now().UTC()
	}

	return nil
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(ts time.Time) time.Time {
	if ts.IsZero() {
		return ts
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// taskJSON is Task with Date in DateLayout.
type taskJSON struct {
	taskAlias
	Date string `json:"date"`
}

type taskAlias Task

// MarshalJSON writes Date as a YYYY-MM-DD calendar date.
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{taskAlias: taskAlias(t)}
	if !t.Date.IsZero() {
		out.Date = t.Date.Format(DateLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*t = Task(in.taskAlias)
	if in.Date != "" {
		d, err := ParseDate(in.Date)
		if err != nil {
			return err
		}
		t.Date = d
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewValidationError("date", "must be a date in YYYY-MM-DD format", ErrInvalidFormat)
	}
	return d, nil
}

func nonEmpty(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}
