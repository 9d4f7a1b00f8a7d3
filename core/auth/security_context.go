package auth

// RoleAdmin is the universal override role: it satisfies every role gate
// and implies every permission.
const RoleAdmin = "admin"

// SecurityContext is the per-request authentication state derived from a
// verified token. It is a value object: built once during authorization,
// never cached beyond the request.
type SecurityContext struct {
	Principal     Principal
	Authenticated bool
	Role          string

	permissions map[string]struct{}
}

// NewSecurityContext builds the security context for a verified principal.
func NewSecurityContext(principal Principal, claims Claims) SecurityContext {
	perms := make(map[string]struct{}, len(claims.Permissions))
	for _, p := range claims.Permissions {
		perms[p] = struct{}{}
	}
	return SecurityContext{
		Principal:     principal,
		Authenticated: true,
		Role:          claims.Role,
		permissions:   perms,
	}
}

// HasRole reports whether the context satisfies the required role.
// Admin satisfies every role.
func (s SecurityContext) HasRole(role string) bool {
	return s.Authenticated && (s.Role == role || s.Role == RoleAdmin)
}

// HasPermission reports whether the permission is present in the resolved
// set. Admin implies all permissions.
func (s SecurityContext) HasPermission(permission string) bool {
	if !s.Authenticated {
		return false
	}
	if s.Role == RoleAdmin {
		return true
	}
	_, ok := s.permissions[permission]
	return ok
}

// Permissions returns the resolved permission set as a slice.
func (s SecurityContext) Permissions() []string {
	out := make([]string, 0, len(s.permissions))
	for p := range s.permissions {
		out = append(out, p)
	}
	return out
}
