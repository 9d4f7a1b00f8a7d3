// Package guard composes the request-gatekeeping pipeline. A Guard wraps
// application handlers with four entry points of increasing strictness:
//
//	Public          rate limit only
//	Authenticated   + origin check (production), bearer token, claims
//	RoleGated       + required role (admin overrides)
//	PermissionGated + required permission (admin implies all)
//
// Stage order is fixed and each stage short-circuits on denial, so a
// rate-limited request never touches the identity provider and an
// unauthenticated one never reaches a role check. Denials and handler
// failures alike surface as taxonomy errors rendered in the standard
// envelope by the router's error handler.
//
//	g, err := guard.New[*router.Context](cfg, limiter, verifier, resolver)
//	...
//	r.Get("/health", g.Public(health))
//	r.Get("/profile", g.Authenticated(profile))
//	r.Delete("/users/{id}", g.RoleGated("moderator", deleteUser))
//	r.Post("/billing", g.PermissionGated("billing:write", charge))
package guard
