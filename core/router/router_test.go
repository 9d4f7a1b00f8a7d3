package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/gatekit/core/apperror"
	"github.com/gatekit/gatekit/core/config"
	"github.com/gatekit/gatekit/core/handler"
	"github.com/gatekit/gatekit/core/response"
	"github.com/gatekit/gatekit/core/router"
)

func newEnvelopeRouter() *router.Router[*router.Context] {
	translator := apperror.NewTranslator(config.Development)
	return router.New[*router.Context](
		router.WithErrorHandler(response.NewErrorHandler[*router.Context](translator)),
	)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRouter_Dispatch(t *testing.T) {
	t.Parallel()

	rt := newEnvelopeRouter()
	rt.Get("/users/{id}", func(ctx *router.Context) handler.Response {
		return response.JSON(map[string]any{"id": ctx.Param("id")})
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, map[string]any{"id": "42"}, env.Data)
}

func TestRouter_MethodRouting(t *testing.T) {
	t.Parallel()

	rt := newEnvelopeRouter()
	rt.Get("/items", func(ctx *router.Context) handler.Response {
		return response.JSON("list")
	})
	rt.Post("/items", func(ctx *router.Context) handler.Response {
		return response.JSONWithStatus("created", http.StatusCreated)
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouter_UnknownRouteEnvelope(t *testing.T) {
	t.Parallel()

	rt := newEnvelopeRouter()
	rt.Get("/known", func(ctx *router.Context) handler.Response {
		return response.JSON("ok")
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Equal(t, "Route not found", env.Error)
}

func TestRouter_MethodMismatchCollapsesToNotFound(t *testing.T) {
	t.Parallel()

	rt := newEnvelopeRouter()
	rt.Get("/items", func(ctx *router.Context) handler.Response {
		return response.JSON("list")
	})

	// A wrong method on a known path answers with the same envelope as an
	// unknown path, never ServeMux's plain-text 405.
	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/items", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Empty(t, w.Header().Get("Allow"))
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	rt := newEnvelopeRouter()
	rt.Use(mw("first"), mw("second"))
	rt.Get("/", func(ctx *router.Context) handler.Response {
		order = append(order, "handler")
		return response.JSON("ok")
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRouter_MiddlewareShortCircuit(t *testing.T) {
	t.Parallel()

	called := false
	deny := func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			return response.Error(apperror.ErrUnauthorized)
		}
	}

	rt := newEnvelopeRouter()
	rt.Use(deny)
	rt.Get("/", func(ctx *router.Context) handler.Response {
		called = true
		return response.JSON("ok")
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRouter_PanicRecovery(t *testing.T) {
	t.Parallel()

	rt := newEnvelopeRouter()
	rt.Get("/boom", func(ctx *router.Context) handler.Response {
		panic("unexpected failure")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestRouter_NilResponse(t *testing.T) {
	t.Parallel()

	rt := newEnvelopeRouter()
	rt.Get("/nil", func(ctx *router.Context) handler.Response {
		return nil
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nil", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestContext_Values(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	rt := newEnvelopeRouter()
	rt.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			ctx.SetValue(ctxKey{}, "stored")
			return next(ctx)
		}
	})
	rt.Get("/", func(ctx *router.Context) handler.Response {
		val, _ := ctx.Value(ctxKey{}).(string)
		return response.JSON(val)
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "stored", decodeEnvelope(t, w).Data)
}

func TestRouter_CustomContextRequiresFactory(t *testing.T) {
	t.Parallel()

	type customContext struct {
		*router.Context
	}

	rt := router.New[customContext](
		router.WithContextFactory(func(w http.ResponseWriter, r *http.Request) customContext {
			return customContext{Context: router.NewContext(w, r)}
		}),
	)
	rt.Get("/", func(ctx customContext) handler.Response {
		return response.JSON("custom")
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
