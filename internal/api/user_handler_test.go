package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/geotask-api/internal/domain"
)

// seedUser stores an account directly in the in-memory user store.
func seedUser(t *testing.T, d *testDeps, id uuid.UUID, name, email string, active bool) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u := &domain.User{
		ID:             id,
		Name:           name,
		Email:          email,
		Phone:          "+593 99 000 0000",
		HashedPassword: "secret1",
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	d.users.Users[email] = u
	return u
}

func TestListUsersHandler(t *testing.T) {
	t.Parallel()
	d := newTestDeps()
	seedUser(t, d, d.identity.UserID, "Ana", "ana@example.com", true)
	seedUser(t, d, uuid.New(), "Gone", "gone@example.com", false)

	w := d.do(t, http.MethodGet, "/api/users", "", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secret1")

	var resp []UserResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, d.identity.UserID, resp[0].ID)
	assert.Equal(t, "Ana", resp[0].Name)

	w = d.do(t, http.MethodGet, "/api/users", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserHandler(t *testing.T) {
	t.Parallel()

	inactiveID := uuid.New()
	tests := []struct {
		name string
		path func(d *testDeps) string
		want int
	}{
		{"active account", func(d *testDeps) string { return "/api/users/" + d.identity.UserID.String() }, http.StatusOK},
		{"inactive account", func(*testDeps) string { return "/api/users/" + inactiveID.String() }, http.StatusNotFound},
		{"unknown account", func(*testDeps) string { return "/api/users/" + uuid.NewString() }, http.StatusNotFound},
		{"malformed id", func(*testDeps) string { return "/api/users/not-a-uuid" }, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := newTestDeps()
			seedUser(t, d, d.identity.UserID, "Ana", "ana@example.com", true)
			seedUser(t, d, inactiveID, "Gone", "gone@example.com", false)

			w := d.do(t, http.MethodGet, tc.path(d), "", true)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.NotContains(t, w.Body.String(), "secret1")
		})
	}
}

func TestUpdateUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("renames own account", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		seedUser(t, d, d.identity.UserID, "Ana", "ana@example.com", true)

		path := "/api/users/" + d.identity.UserID.String()
		w := d.do(t, http.MethodPut, path, `{"name":"  Ana Lucia "}`, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp UserResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Ana Lucia", resp.Name)
		assert.Equal(t, "ana@example.com", resp.Email)

		stored, err := d.users.GetByID(context.Background(), d.identity.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Lucia", stored.Name)
	})

	t.Run("another account is forbidden", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		other := seedUser(t, d, uuid.New(), "Luis", "luis@example.com", true)

		w := d.do(t, http.MethodPut, "/api/users/"+other.ID.String(), `{"name":"Hacked"}`, true)
		assert.Equal(t, http.StatusForbidden, w.Code)

		stored, err := d.users.GetByID(context.Background(), other.ID)
		require.NoError(t, err)
		assert.Equal(t, "Luis", stored.Name)
	})

	invalid := []struct {
		name string
		body string
	}{
		{"missing name", `{}`},
		{"blank name", `{"name":"   "}`},
		{"long name", fmt.Sprintf(`{"name":%q}`, strings.Repeat("n", 101))},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := newTestDeps()
			seedUser(t, d, d.identity.UserID, "Ana", "ana@example.com", true)

			w := d.do(t, http.MethodPut, "/api/users/"+d.identity.UserID.String(), tt.body, true)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		seedUser(t, d, d.identity.UserID, "Ana", "ana@example.com", true)
		d.users.UpdateFn = func(context.Context, *domain.User) error {
			return errors.New("connection reset")
		}

		w := d.do(t, http.MethodPut, "/api/users/"+d.identity.UserID.String(), `{"name":"Ana"}`, true)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})

	t.Run("requires a token", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		w := d.do(t, http.MethodPut, "/api/users/"+d.identity.UserID.String(), `{"name":"Ana"}`, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDeactivateUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("own account blocks login", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		seedUser(t, d, d.identity.UserID, "Ana", "ana@example.com", true)

		w := d.do(t, http.MethodDelete, "/api/users/"+d.identity.UserID.String(), "", true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp DeletedResponse
		decodeBody(t, w, &resp)
		assert.True(t, resp.Deleted)

		stored, err := d.users.GetByID(context.Background(), d.identity.UserID)
		require.NoError(t, err)
		assert.False(t, stored.Active)

		w = d.do(t, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"secret1"}`, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = d.do(t, http.MethodGet, "/api/users/"+d.identity.UserID.String(), "", true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("another account is forbidden", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		other := seedUser(t, d, uuid.New(), "Luis", "luis@example.com", true)

		w := d.do(t, http.MethodDelete, "/api/users/"+other.ID.String(), "", true)
		assert.Equal(t, http.StatusForbidden, w.Code)

		stored, err := d.users.GetByID(context.Background(), other.ID)
		require.NoError(t, err)
		assert.True(t, stored.Active)
	})

	t.Run("already inactive account", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		seedUser(t, d, d.identity.UserID, "Ana", "ana@example.com", false)

		w := d.do(t, http.MethodDelete, "/api/users/"+d.identity.UserID.String(), "", true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
