package apperror

import "net/http"

// providerCodes maps identity-provider failure codes to stable application
// errors. Unmapped codes fall back to ErrFirebaseError.
var providerCodes = map[string]Error{
	"auth/invalid-email":          New(KindInvalidEmail, "Invalid email address", http.StatusBadRequest),
	"auth/user-disabled":          New(KindUnauthorized, "This account has been disabled", http.StatusForbidden),
	"auth/user-not-found":         New(KindNotFound, "Account not found", http.StatusNotFound),
	"auth/wrong-password":         New(KindUnauthorized, "Invalid credentials", http.StatusUnauthorized),
	"auth/email-already-in-use":   New(KindAlreadyExists, "An account with this email already exists", http.StatusConflict),
	"auth/weak-password":          New(KindInvalidInput, "Password is too weak", http.StatusBadRequest),
	"auth/operation-not-allowed":  New(KindInsufficientPermissions, "Operation not allowed", http.StatusForbidden),
	"auth/invalid-api-key":        New(KindFirebaseError, "Identity provider misconfigured", http.StatusInternalServerError),
	"auth/network-request-failed": New(KindServiceUnavailable, "Identity provider unreachable", http.StatusServiceUnavailable),
	"auth/too-many-requests":      New(KindRateLimitExceeded, "Too many attempts, please try again later", http.StatusTooManyRequests),
}

// translateProvider resolves a provider failure code through the static table.
func translateProvider(e ProviderError) Error {
	if mapped, ok := providerCodes[e.ProviderCode]; ok {
		return mapped
	}
	return ErrFirebaseError.WithDetails(map[string]any{"provider_code": e.ProviderCode})
}
