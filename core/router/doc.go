// Package router is the thin dispatch layer between net/http and the
// authorization pipeline. It adapts http.ServeMux (Go 1.22 method
// patterns) to type-safe handlers, chains middleware, recovers panics,
// and funnels every failure into a single error handler so all responses
// share the standard envelope.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler[*router.Context](response.NewErrorHandler[*router.Context](translator)),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Get("/items/{id}", g.Authenticated(getItem))
//	http.ListenAndServe(":8080", r)
package router
