// Package middleware provides the reusable request-processing stages the
// authorization guard composes: rate limiting, client IP extraction,
// origin validation, request IDs, request logging, and body sanitization.
//
// Every middleware follows the same conventions: a Config struct with an
// optional Skip predicate, a WithConfig constructor alongside a
// zero-config one where defaults make sense, context-key getters
// (GetClientIP, GetRequestID) for values stored during the request, and
// response decorators for anything that must touch headers after the
// handler runs.
package middleware
