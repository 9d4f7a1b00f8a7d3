// Package handler defines the request-processing contracts shared by the
// router, the authorization guard, and all middleware: a Context interface
// over the incoming request, a Response function that renders output, and
// generic HandlerFunc/Middleware types for type-safe composition.
//
// Handlers return a Response instead of writing to the ResponseWriter
// directly. This separation lets middleware decorate responses (headers,
// envelopes) and lets the router funnel every error through a single
// error handler:
//
//	func profile(ctx *router.Context) handler.Response {
//		sec, ok := guard.GetSecurityContext(ctx)
//		if !ok {
//			return response.Error(apperror.ErrUnauthorized)
//		}
//		return response.JSON(map[string]any{"user": sec.Principal.ID})
//	}
package handler
