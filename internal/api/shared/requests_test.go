package shared

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/geotask-api/internal/domain"
)

func domainIdentity(id uuid.UUID) domain.Identity {
	return domain.Identity{UserID: id, Email: "walker@example.com"}
}

type sampleRequest struct {
	Title string `json:"title" validate:"required,max=5"`
}

type selfValidating struct{}

func (selfValidating) Validate() error { return errors.New("custom") }

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
		want    string
	}{
		{"valid", `{"title":"abc"}`, nil, "abc"},
		{"empty body", ``, ErrEmptyBody, ""},
		{"malformed", `{"title":`, errors.New("invalid JSON body"), ""},
		{"unknown field", `{"title":"a","owner_id":"x"}`, errors.New("invalid JSON body"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var got sampleRequest
			err := DecodeJSON(req, &got)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.Title)
			case errors.Is(tt.wantErr, ErrEmptyBody):
				assert.ErrorIs(t, err, ErrEmptyBody)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&sampleRequest{Title: "ok"}))
	assert.Error(t, ValidateRequest(&sampleRequest{}))
	assert.Error(t, ValidateRequest(&sampleRequest{Title: "too long"}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "custom")
}
