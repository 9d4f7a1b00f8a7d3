package router

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Context is the default request context. It wraps the request's
// context.Context and adds HTTP accessors plus a request-scoped value map
// for middleware.
type Context struct {
	request *http.Request
	writer  http.ResponseWriter

	mu     sync.RWMutex
	values map[any]any
}

// NewContext creates a default context. Custom context types that embed
// *Context use it from their factories.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		request: r,
		writer:  w,
	}
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request {
	return c.request
}

// ResponseWriter returns the underlying response writer.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.writer
}

// Param returns the path parameter for the key, using the standard
// library's pattern matching.
func (c *Context) Param(key string) string {
	return c.request.PathValue(key)
}

// SetValue stores a request-scoped value.
func (c *Context) SetValue(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Value returns a request-scoped value, falling back to the request's
// context.
func (c *Context) Value(key any) any {
	c.mu.RLock()
	val, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return val
	}
	return c.request.Context().Value(key)
}

// Deadline implements context.Context.
func (c *Context) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

// Done implements context.Context.
func (c *Context) Done() <-chan struct{} {
	return c.request.Context().Done()
}

// Err implements context.Context.
func (c *Context) Err() error {
	return c.request.Context().Err()
}

var _ context.Context = (*Context)(nil)
