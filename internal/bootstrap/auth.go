package bootstrap

import (
	"log/slog"

	"github.com/brightmath/campus-api/config"
	"github.com/brightmath/campus-api/internal/adapters/authroles"
	"github.com/brightmath/campus-api/internal/adapters/devauth"
	"github.com/brightmath/campus-api/internal/adapters/google"
	redisadapter "github.com/brightmath/campus-api/internal/adapters/redis"
	"github.com/brightmath/campus-api/internal/adapters/tokens"
	"github.com/brightmath/campus-api/internal/ports"
	"github.com/brightmath/campus-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Session     config.SessionConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	issuer, err := tokens.NewIssuer(tokens.Config{
		Secret:   cfg.Auth.Token.Secret,
		Issuer:   cfg.Auth.Token.Issuer,
		Lifetime: cfg.Auth.Token.Lifetime,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create token issuer, auth disabled", "error", err)
		}
		return nil
	}

	provider := buildProvider(cfg)
	if provider == nil {
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Providers: map[string]ports.AuthProvider{"google": provider},
		Sessions:  redisadapter.NewSessionStore(cfg.RedisClient, cfg.Session.Scope, cfg.Session.TTL),
		Roles: authroles.StaticRoleMapper{
			AdminEmails:   cfg.Auth.AdminEmails,
			TeacherEmails: cfg.Auth.TeacherEmails,
		},
		Tokens: issuer,
	})
}

//nolint:ireturn // the mode decides which provider implementation backs the port.
func buildProvider(cfg AuthConfig) ports.AuthProvider {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			Subject:   cfg.Auth.DevAuth.UserID,
			Email:     cfg.Auth.DevAuth.Email,
			GivenName: cfg.Auth.DevAuth.Name,
			LastName:  cfg.Auth.DevAuth.LastName,
		})
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
			}
			return nil
		}
		return prov

	case config.AuthModeOAuth:
		g := cfg.Auth.Google
		if g.ClientID == "" || g.ClientSecret == "" {
			if cfg.Logger != nil {
				cfg.Logger.Warn("oauth mode selected but google client config missing; auth disabled",
					"client_id_empty", g.ClientID == "",
					"client_secret_empty", g.ClientSecret == "",
				)
			}
			return nil
		}
		prov, err := google.NewProvider(google.ProviderConfig{
			ClientID:     g.ClientID,
			ClientSecret: g.ClientSecret,
			RedirectURL:  g.RedirectURL,
			Scope:        g.Scope,
			Issuer:       g.Issuer,
		})
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("failed to create google provider, auth disabled", "error", err)
			}
			return nil
		}
		return prov

	default:
		return nil
	}
}
