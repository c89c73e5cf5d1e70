package redis

// Package redis provides Redis-based adapters for the campus system.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
)

// SessionStore persists the current session as a token/user key pair under a
// scope prefix. The pair is written inside a MULTI/EXEC transaction and read
// with a single MGET, so callers never observe a half-written session.
type SessionStore struct {
	client redis.UniversalClient
	scope  string
	ttl    time.Duration
}

// NewSessionStore creates a session store scoped to the given key prefix
// (typically one prefix per client/device). TTL of zero means no expiry.
func NewSessionStore(client redis.UniversalClient, scope string, ttl time.Duration) *SessionStore {
	if scope == "" {
		scope = "session"
	}
	return &SessionStore{
		client: client,
		scope:  scope,
		ttl:    ttl,
	}
}

func (s *SessionStore) tokenKey() string { return s.scope + ":token" }
func (s *SessionStore) userKey() string  { return s.scope + ":user" }

// Set persists the token and user record together. Both writes happen in one
// transaction so a concurrent Current sees either the old pair or the new pair.
func (s *SessionStore) Set(ctx context.Context, sess domainauth.Session) error {
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	if sess.User.ID == "" {
		return errors.New("session user cannot be empty")
	}

	userData, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("marshal user record: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(), sess.Token, s.ttl)
		pipe.Set(ctx, s.userKey(), userData, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist session pair: %w", err)
	}
	return nil
}

// Current returns the stored session, or nil when no complete session exists.
// A pair with either half missing, or an unparseable user record, counts as
// no session; the store self-heals by clearing the remaining keys.
func (s *SessionStore) Current(ctx context.Context) (*domainauth.Session, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("read session pair: %w", err)
	}

	token, tokenOK := asNonEmptyString(vals[0])
	userData, userOK := asNonEmptyString(vals[1])
	if !tokenOK || !userOK {
		// Half a session is no session. Clean up whatever half is left.
		if tokenOK || userOK {
			if clearErr := s.Clear(ctx); clearErr != nil {
				return nil, fmt.Errorf("clear partial session: %w", clearErr)
			}
		}
		return nil, nil
	}

	var user domainauth.UserRecord
	if unmarshalErr := json.Unmarshal([]byte(userData), &user); unmarshalErr != nil {
		// Corrupt user record: fail open to logged-out, not to a half-valid user.
		if clearErr := s.Clear(ctx); clearErr != nil {
			return nil, fmt.Errorf("clear corrupt session: %w", clearErr)
		}
		return nil, nil
	}

	return &domainauth.Session{Token: token, User: user}, nil
}

// IsAuthenticated reports whether a non-empty token is stored.
func (s *SessionStore) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("read token: %w", err)
	}
	return token != "", nil
}

// Clear removes both halves of the session in a single DEL. Idempotent.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("delete session pair: %w", err)
	}
	return nil
}

func asNonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}
