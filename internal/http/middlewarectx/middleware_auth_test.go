package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymflowhq/gymflow/internal/http/middlewarectx"
	"github.com/gymflowhq/gymflow/internal/lib/jwt"
	"github.com/gymflowhq/gymflow/internal/models"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	logger := newNoopLogger()

	validToken, err := maker.GenerateToken("u-1", "manager@example.com", models.RoleManager)
	require.NoError(t, err)

	foreignMaker := jwt.NewJWTMaker("other-secret", time.Hour)
	foreignToken, err := foreignMaker.GenerateToken("u-1", "manager@example.com", models.RoleManager)
	require.NoError(t, err)

	handlerCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		assert.Equal(t, "u-1", r.Context().Value(middlewarectx.UserUID))
		assert.Equal(t, "manager@example.com", r.Context().Value(middlewarectx.Email))
		assert.Equal(t, models.RoleManager, r.Context().Value(middlewarectx.Role))
		w.WriteHeader(http.StatusOK)
	})

	mw := middlewarectx.JWTMiddleware(maker, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "token signed with wrong secret",
			authHeader:     "Bearer " + foreignToken,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer " + validToken,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			mw.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	logger := newNoopLogger()

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := middlewarectx.JWTMiddleware(maker, logger)(
		middlewarectx.AdminOnlyMiddleware(logger)(nextHandler))

	t.Run("admin passes", func(t *testing.T) {
		token, err := maker.GenerateToken("owner-1", "owner@example.com", models.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		chain.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("manager is rejected", func(t *testing.T) {
		token, err := maker.GenerateToken("mgr-1", "mgr@example.com", models.RoleManager)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		chain.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
