package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the real Google OAuth/OIDC provider.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// GoogleConfig contains Google OAuth/OIDC configuration.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
	Scope        string `env:"SCOPE"        envDefault:"openid profile email"`
	// Issuer overrides the discovery issuer. Leave empty outside tests.
	Issuer string `env:"ISSUER"`
}

// DevAuthConfig controls the mock authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID   string `env:"USER_ID"   envDefault:"dev-user"`
	Email    string `env:"EMAIL"     envDefault:"dev@example.com"`
	Name     string `env:"NAME"      envDefault:"Dev"`
	LastName string `env:"LAST_NAME" envDefault:"User"`
}

// TokenConfig controls bearer token minting.
type TokenConfig struct {
	// Secret signs tokens. Required outside development.
	Secret   string        `env:"SECRET"`
	Issuer   string        `env:"ISSUER"   envDefault:"campus-api"`
	Lifetime time.Duration `env:"LIFETIME" envDefault:"24h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Google configuration (used when Mode=oauth).
	Google GoogleConfig `envPrefix:"GOOGLE_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Token configuration for minted bearer tokens.
	Token TokenConfig `envPrefix:"TOKEN_"`

	// AdminEmails lists accounts mapped to the admin role.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:";"`

	// TeacherEmails lists accounts mapped to the teacher role.
	TeacherEmails []string `env:"TEACHER_EMAILS" envSeparator:";"`

	// AllowedOrigins are the origins the popup handshake may post success
	// messages to, and accept them from. Defaults to the app base URL.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:";"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.AdminEmails = trimNonEmpty(a.AdminEmails)
	a.TeacherEmails = trimNonEmpty(a.TeacherEmails)
	a.AllowedOrigins = trimNonEmpty(a.AllowedOrigins)
	if a.Token.Lifetime <= 0 {
		a.Token.Lifetime = 24 * time.Hour
	}
}

func trimNonEmpty(in []string) []string {
	out := in[:0]
	for _, v := range in {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
