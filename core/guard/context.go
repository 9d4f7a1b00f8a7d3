package guard

import (
	"github.com/gatekit/gatekit/core/auth"
	"github.com/gatekit/gatekit/core/handler"
)

// securityContextKey is used as a key for storing the security context in
// the request context.
type securityContextKey struct{}

func setSecurityContext(ctx handler.Context, sec auth.SecurityContext) {
	ctx.SetValue(securityContextKey{}, sec)
}

// GetSecurityContext retrieves the security context resolved during
// authentication. Returns false for requests that did not pass through an
// authenticated entry point.
func GetSecurityContext(ctx handler.Context) (auth.SecurityContext, bool) {
	sec, ok := ctx.Value(securityContextKey{}).(auth.SecurityContext)
	return sec, ok
}
