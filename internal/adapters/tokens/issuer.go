package tokens

// Package tokens mints and verifies the bearer tokens returned by the
// social-login exchange and carried in the Authorization header.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
)

// Claims is the JWT payload for a campus bearer token. The user record is
// embedded so API middleware can authenticate without a session lookup.
type Claims struct {
	Name     string          `json:"name,omitempty"`
	LastName string          `json:"lastName,omitempty"`
	Email    string          `json:"email,omitempty"`
	Role     domainauth.Role `json:"role,omitempty"`
	Avatar   string          `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// Issuer issues and verifies HS256-signed bearer tokens.
type Issuer struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// Config holds configuration for the token issuer.
type Config struct {
	Secret   string
	Issuer   string        // optional, defaults to "campus-api"
	Lifetime time.Duration // optional, defaults to 24h
}

// NewIssuer constructs a token issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	iss := cfg.Issuer
	if iss == "" {
		iss = "campus-api"
	}
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Issuer{
		secret:   []byte(cfg.Secret),
		issuer:   iss,
		lifetime: lifetime,
	}, nil
}

// Issue mints a signed bearer token for the given user.
func (i *Issuer) Issue(user domainauth.UserRecord) (string, error) {
	if user.ID == "" {
		return "", errors.New("user ID is required")
	}

	now := time.Now()
	claims := Claims{
		Name:     user.Name,
		LastName: user.LastName,
		Email:    user.Email,
		Role:     user.Role,
		Avatar:   user.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token and returns the user record it
// was issued for. Expired or tampered tokens fail.
func (i *Issuer) Verify(tokenStr string) (domainauth.UserRecord, error) {
	if tokenStr == "" {
		return domainauth.UserRecord{}, errors.New("token is required")
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return domainauth.UserRecord{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domainauth.UserRecord{}, errors.New("invalid token claims")
	}

	return domainauth.UserRecord{
		ID:       claims.Subject,
		Name:     claims.Name,
		LastName: claims.LastName,
		Email:    claims.Email,
		Role:     claims.Role,
		Avatar:   claims.Avatar,
	}, nil
}
