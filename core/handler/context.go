package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// It extends context.Context with HTTP-specific accessors and with
// request-scoped value storage that middleware uses to pass data down
// the chain.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
