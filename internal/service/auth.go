package service

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	// Providers maps provider names ("google") to their adapters.
	Providers map[string]ports.AuthProvider
	Sessions  ports.SessionStore
	Roles     ports.RoleMapper
	Tokens    ports.TokenIssuer
}

// AuthService orchestrates authentication flows: provider exchange, role
// mapping, token minting, and session reads. It does not persist sessions
// itself; the popup handshake owns the persist-then-post ordering.
type AuthService struct {
	providers map[string]ports.AuthProvider
	sessions  ports.SessionStore
	roles     ports.RoleMapper
	tokens    ports.TokenIssuer
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		providers: opts.Providers,
		sessions:  opts.Sessions,
		roles:     opts.Roles,
		tokens:    opts.Tokens,
	}
}

func (s *AuthService) provider(name string) (ports.AuthProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown auth provider %q", name)
	}
	return p, nil
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, provider, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}

	authURL, state, nonce, err := p.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Provider string
	Code     string
	// Nonce is the value issued by BeginLogin. Empty skips the ID token
	// nonce check; only the popup relay path omits it, the state cookie
	// having already bound the callback to its initiation.
	Nonce string
}

// CompleteLogin exchanges the authorization code for an identity, maps the
// role, and mints a bearer token. The returned session has not been stored.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (domainauth.Session, error) {
	if input.Code == "" {
		return domainauth.Session{}, errors.New("authorization code is required")
	}
	p, err := s.provider(input.Provider)
	if err != nil {
		return domainauth.Session{}, err
	}

	identity, err := p.Exchange(ctx, ports.ExchangeInput{Code: input.Code, Nonce: input.Nonce})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	if identity.Subject == "" {
		return domainauth.Session{}, errors.New("provider returned identity without subject")
	}

	user := domainauth.UserRecord{
		ID:       identity.Subject,
		Name:     identity.GivenName,
		LastName: identity.LastName,
		Email:    identity.Email,
		Role:     s.roles.Map(identity.Email),
		Avatar:   identity.Picture,
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("issue token: %w", err)
	}

	return domainauth.Session{Token: token, User: user}, nil
}

// Sessions exposes the underlying session store for callers that persist
// sessions themselves, such as the popup callback handler.
//
//nolint:ireturn // the store is held as a port; callers should not see the concrete type.
func (s *AuthService) Sessions() ports.SessionStore {
	return s.sessions
}

// ExchangeSocialLogin adapts CompleteLogin to the popup handshake contract.
func (s *AuthService) ExchangeSocialLogin(ctx context.Context, provider, code string) (domainauth.Session, error) {
	return s.CompleteLogin(ctx, CompleteLoginInput{Provider: provider, Code: code})
}

// Status returns the stored session, or nil when nobody is signed in.
func (s *AuthService) Status(ctx context.Context) (*domainauth.Session, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

// VerifyToken validates a bearer token and returns the user it was minted for.
func (s *AuthService) VerifyToken(token string) (domainauth.UserRecord, error) {
	return s.tokens.Verify(token)
}

// Logout clears the stored session. Idempotent.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
