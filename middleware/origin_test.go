package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/gatekit/core/apperror"
	"github.com/gatekit/gatekit/core/handler"
	"github.com/gatekit/gatekit/core/response"
	"github.com/gatekit/gatekit/core/router"
	"github.com/gatekit/gatekit/middleware"
)

func TestOrigin_NotEnforced(t *testing.T) {
	t.Parallel()

	mw := middleware.Origin[*router.Context](middleware.OriginConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		Enforce:        false,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	_, err := run(t, mw, okJSON, req)
	assert.NoError(t, err)
}

func TestOrigin_Enforced(t *testing.T) {
	t.Parallel()

	mw := middleware.Origin[*router.Context](middleware.OriginConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		Enforce:        true,
	})

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{name: "listed origin", origin: "https://app.example.com", allowed: true},
		{name: "unlisted origin", origin: "https://evil.example.com", allowed: false},
		{name: "missing origin", origin: "", allowed: false},
		{name: "scheme mismatch", origin: "http://app.example.com", allowed: false},
		{name: "subdomain is not a match", origin: "https://api.app.example.com", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			called := false
			_, err := run(t, mw, func(ctx *router.Context) handler.Response {
				called = true
				return response.JSON("ok")
			}, req)

			if tt.allowed {
				assert.NoError(t, err)
				assert.True(t, called)
				return
			}

			require.Error(t, err)
			var appErr apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusForbidden, appErr.StatusCode())
			assert.Equal(t, apperror.KindInsufficientPermissions, appErr.Code)
			assert.False(t, called)
		})
	}
}

func TestOrigin_Skip(t *testing.T) {
	t.Parallel()

	mw := middleware.Origin[*router.Context](middleware.OriginConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		Enforce:        true,
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().URL.Path == "/webhooks"
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/webhooks", nil)
	_, err := run(t, mw, okJSON, req)
	assert.NoError(t, err)
}
