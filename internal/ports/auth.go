package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider consent URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying the nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists the current session as a token/user pair.
// Implementations must treat the pair atomically: Current never observes a
// half-written session, and Set/Clear act on both halves together.
type SessionStore interface {
	// Current returns the stored session, or nil when no complete session exists.
	Current(ctx context.Context) (*domainauth.Session, error)

	// Set persists the token and user record as a pair.
	Set(ctx context.Context, sess domainauth.Session) error

	// Clear removes both halves of the session. Idempotent.
	Clear(ctx context.Context) error

	// IsAuthenticated reports whether a non-empty token is stored.
	IsAuthenticated(ctx context.Context) (bool, error)
}

// TokenIssuer mints and verifies bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(user domainauth.UserRecord) (string, error)
	Verify(token string) (domainauth.UserRecord, error)
}

// RoleMapper assigns an application role to an authenticated identity.
type RoleMapper interface {
	Map(email string) domainauth.Role
}
