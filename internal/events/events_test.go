package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskEvent(t *testing.T) {
	t.Parallel()

	type snapshot struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}

	owner := uuid.New()
	event, err := NewTaskEvent(TaskCompleted, 42, owner, owner, snapshot{Title: "Buy supplies", Status: "completed"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TaskCompleted, event.Type)
	assert.Equal(t, int64(42), event.TaskID)
	assert.Equal(t, owner, event.OwnerID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded snapshot
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, "completed", decoded.Status)
}

func TestNewTaskEventWithoutPayload(t *testing.T) {
	t.Parallel()

	event, err := NewTaskEvent(TaskDeleted, 7, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, event.Payload)
}

func TestNewTaskEventUnmarshalablePayload(t *testing.T) {
	t.Parallel()

	_, err := NewTaskEvent(TaskUpdated, 1, uuid.New(), uuid.New(), make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *TaskEvent
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}
