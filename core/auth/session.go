package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
)

// Session verification errors.
var (
	ErrNoSession     = errors.New("no active session")
	ErrTokenMismatch = errors.New("token does not match active session")
)

// SessionVerifier validates a credential by comparing it to the token most
// recently issued to the in-process session. This only works in a single
// stateful process: it does not cryptographically verify arbitrary bearer
// tokens, and a multi-instance deployment must supply a TokenVerifier that
// does (e.g. signature verification against the provider's keys).
type SessionVerifier struct {
	mu        sync.RWMutex
	token     string
	principal Principal
}

// NewSessionVerifier creates a verifier with no active session.
func NewSessionVerifier() *SessionVerifier {
	return &SessionVerifier{}
}

// SetSession records the currently issued token and its principal.
func (v *SessionVerifier) SetSession(token string, principal Principal) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token = token
	v.principal = principal
}

// ClearSession forgets the active session.
func (v *SessionVerifier) ClearSession() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token = ""
	v.principal = Principal{}
}

// Verify implements TokenVerifier by exact comparison with the active
// session token.
func (v *SessionVerifier) Verify(ctx context.Context, token string) (Principal, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.token == "" {
		return Principal{}, ErrNoSession
	}
	if subtle.ConstantTimeCompare([]byte(v.token), []byte(token)) != 1 {
		return Principal{}, ErrTokenMismatch
	}
	return v.principal, nil
}
