package auth

import "context"

// Principal is the authenticated identity associated with a request.
type Principal struct {
	ID    string
	Email string
}

// Claims is the role and permission set resolved for a principal.
type Claims struct {
	Role        string
	Permissions []string
}

// TokenVerifier validates a presented bearer credential and returns the
// principal it belongs to. Owned by the identity provider integration;
// the pipeline depends only on this contract.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// ClaimsResolver resolves the role and permission set for a principal.
// Owned by the data store integration.
type ClaimsResolver interface {
	Resolve(ctx context.Context, principal Principal) (Claims, error)
}
