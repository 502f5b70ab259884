package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/geotask-api/internal/api/middleware"
	"github.com/phrazzld/geotask-api/internal/domain"
	"github.com/phrazzld/geotask-api/internal/mocks"
)

const testToken = "Bearer test-token"

type testDeps struct {
	identity  domain.Identity
	jwt       *mocks.MockJWTService
	lifecycle *mocks.MockTaskLifecycleManager
	matcher   *mocks.MockProximityMatcher
	registry  *mocks.MockLocationRegistry
	catalog   *mocks.MockCategoryCatalog
	users     *mocks.MockUserStore
	passwords *mocks.MockPasswordVerifier
}

func newTestDeps() *testDeps {
	identity := domain.Identity{UserID: uuid.New(), Email: "walker@example.com"}
	return &testDeps{
		identity:  identity,
		jwt:       mocks.NewMockJWTService(identity),
		lifecycle: &mocks.MockTaskLifecycleManager{},
		matcher:   &mocks.MockProximityMatcher{},
		registry:  &mocks.MockLocationRegistry{},
		catalog:   &mocks.MockCategoryCatalog{},
		users:     mocks.NewMockUserStore(),
		passwords: &mocks.MockPasswordVerifier{ShouldSucceed: true},
	}
}

// router mirrors the production route table.
func (d *testDeps) router() http.Handler {
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	tasks := NewTaskHandler(d.lifecycle, d.matcher, l)
	locations := NewLocationHandler(d.registry, l)
	categories := NewCategoryHandler(d.catalog, l)
	auth := NewAuthHandler(d.users, d.jwt, d.passwords, l)
	users := NewUserHandler(d.users, l)
	authMW := middleware.NewAuthMiddleware(d.jwt)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/refresh", auth.RefreshToken)

		r.Get("/tasks/nearby", tasks.Nearby)
		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/tasks", tasks.List)
			r.Post("/tasks", tasks.Create)
			r.Get("/tasks/{id}", tasks.Get)
			r.Put("/tasks/{id}", tasks.Update)
			r.Put("/tasks/{id}/complete", tasks.Complete)
			r.Delete("/tasks/{id}", tasks.Delete)

			r.Get("/users", users.List)
			r.Get("/users/{id}", users.Get)
			r.Put("/users/{id}", users.Update)
			r.Delete("/users/{id}", users.Deactivate)
		})

		r.Post("/locations", locations.Register)
		r.Get("/locations", locations.List)
		r.Put("/locations/{id}", locations.Update)
		r.Delete("/locations/{id}", locations.Delete)

		r.Get("/categories", categories.List)
		r.Post("/categories", categories.Create)
		r.Put("/categories/{id}", categories.Update)
		r.Delete("/categories/{id}", categories.Delete)
	})
	return r
}

func (d *testDeps) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", testToken)
	}
	w := httptest.NewRecorder()
	d.router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
