package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/geotask-api/internal/config"
	"github.com/phrazzld/geotask-api/internal/domain"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestJWTService(t *testing.T, secret string, at time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(secret, time.Hour, 24*time.Hour, func() time.Time { return at })
	require.NoError(t, err)
	return svc
}

func testIdentity() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Email: "walker@example.com"}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr bool
	}{
		{"valid", config.AuthConfig{JWTSecret: testSecret, AccessTokenLifetime: time.Hour, RefreshTokenLifetime: 2 * time.Hour}, false},
		{"short secret", config.AuthConfig{JWTSecret: "short", AccessTokenLifetime: time.Hour, RefreshTokenLifetime: 2 * time.Hour}, true},
		{"zero lifetime", config.AuthConfig{JWTSecret: testSecret}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewJWTService(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()
	svc := newTestJWTService(t, testSecret, fixedTime)
	identity := testIdentity()

	token, err := svc.GenerateToken(context.Background(), identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, identity.UserID.String(), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrEmptyUserID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()
	identity := testIdentity()
	issuer := newTestJWTService(t, testSecret, fixedTime)

	access, err := issuer.GenerateToken(context.Background(), identity)
	require.NoError(t, err)
	refresh, err := issuer.GenerateRefreshToken(context.Background(), identity)
	require.NoError(t, err)

	tests := []struct {
		name      string
		validator *hmacJWTService
		token     string
		wantErr   error
	}{
		{"valid token", issuer, access, nil},
		{"within clock skew", newTestJWTService(t, testSecret, fixedTime.Add(time.Hour+time.Minute)), access, nil},
		{"expired token", newTestJWTService(t, testSecret, fixedTime.Add(2*time.Hour)), access, ErrExpiredToken},
		{"invalid signature", newTestJWTService(t, wrongSecret, fixedTime), access, ErrInvalidToken},
		{"malformed token", issuer, "this.is.not.a.valid.jwt.token", ErrInvalidToken},
		{"empty token", issuer, "", ErrInvalidToken},
		{"refresh token used as access", issuer, refresh, ErrWrongTokenType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := tt.validator.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, identity.UserID, claims.UserID)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()
	identity := testIdentity()
	issuer := newTestJWTService(t, testSecret, fixedTime)

	access, err := issuer.GenerateToken(context.Background(), identity)
	require.NoError(t, err)
	refresh, err := issuer.GenerateRefreshToken(context.Background(), identity)
	require.NoError(t, err)

	tests := []struct {
		name      string
		validator *hmacJWTService
		token     string
		wantErr   error
	}{
		{"valid refresh token", newTestJWTService(t, testSecret, fixedTime.Add(12*time.Hour)), refresh, nil},
		{"expired refresh token", newTestJWTService(t, testSecret, fixedTime.Add(25*time.Hour)), refresh, ErrExpiredRefreshToken},
		{"invalid signature", newTestJWTService(t, wrongSecret, fixedTime), refresh, ErrInvalidRefreshToken},
		{"malformed token", issuer, "garbage", ErrInvalidRefreshToken},
		{"access token used as refresh", issuer, access, ErrWrongTokenType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := tt.validator.ValidateRefreshToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, identity, claims.Identity())
			assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		})
	}
}
