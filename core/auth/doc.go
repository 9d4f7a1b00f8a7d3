// Package auth defines the identity collaborator contracts consumed by the
// authorization pipeline: TokenVerifier turns a bearer credential into a
// Principal, ClaimsResolver turns a Principal into a role and permission
// set, and SecurityContext carries the result through the request.
//
// The pipeline never talks to an identity provider directly; it depends on
// these interfaces, which keeps provider SDK calls outside the gatekeeping
// core. SessionVerifier is the in-process, current-token-equality
// implementation; production deployments with multiple instances need a
// verifier that validates tokens cryptographically.
package auth
