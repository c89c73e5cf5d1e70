package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.TokenIssuer  = (*StaticTokenIssuer)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL         string
	DefaultIdentity domainauth.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultIdentity: domainauth.Identity{
			Subject:   "mock-sub-1",
			GivenName: "Mock",
			LastName:  "User",
			Email:     "mock.user@example.com",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	state := fmt.Sprintf("state-%d", m.callCount)
	nonce := fmt.Sprintf("nonce-%d", m.callCount)
	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	return m.DefaultIdentity, nil
}

// MemorySessionStore is an in-memory session store for unit tests. Safe for
// concurrent use, mirroring the atomic-pair contract of the Redis adapter.
type MemorySessionStore struct {
	mu   sync.RWMutex
	sess *domainauth.Session

	// Optional error injection
	SetErr     error
	CurrentErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Current(_ context.Context) (*domainauth.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.CurrentErr != nil {
		return nil, m.CurrentErr
	}
	if m.sess == nil {
		return nil, nil
	}
	cp := *m.sess
	return &cp, nil
}

func (m *MemorySessionStore) Set(_ context.Context, sess domainauth.Session) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	if sess.User.ID == "" {
		return errors.New("session user cannot be empty")
	}
	m.mu.Lock()
	m.sess = &sess
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.sess = nil
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) IsAuthenticated(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess != nil && m.sess.Token != "", nil
}

// StaticRoleMapper maps fixed email lists to roles, defaulting to student.
type StaticRoleMapper struct {
	AdminEmails   []string
	TeacherEmails []string
}

func (m StaticRoleMapper) Map(email string) domainauth.Role {
	if email == "" {
		return domainauth.RoleGuest
	}
	for _, e := range m.AdminEmails {
		if e == email {
			return domainauth.RoleAdmin
		}
	}
	for _, e := range m.TeacherEmails {
		if e == email {
			return domainauth.RoleTeacher
		}
	}
	return domainauth.RoleStudent
}

// StaticTokenIssuer mints predictable tokens for tests.
type StaticTokenIssuer struct {
	// Prefix keeps issued tokens recognizable in assertions. Default "token-for-".
	Prefix string
	// Users records issued tokens back to users for Verify.
	mu    sync.Mutex
	users map[string]domainauth.UserRecord
}

func (s *StaticTokenIssuer) Issue(user domainauth.UserRecord) (string, error) {
	if user.ID == "" {
		return "", errors.New("user ID is required")
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = "token-for-"
	}
	token := prefix + user.ID
	s.mu.Lock()
	if s.users == nil {
		s.users = make(map[string]domainauth.UserRecord)
	}
	s.users[token] = user
	s.mu.Unlock()
	return token, nil
}

func (s *StaticTokenIssuer) Verify(token string) (domainauth.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[token]
	if !ok {
		return domainauth.UserRecord{}, errors.New("unknown token")
	}
	return user, nil
}
