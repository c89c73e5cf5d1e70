package bootstrap

import (
	"testing"
	"time"

	"github.com/brightmath/campus-api/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Mode: config.AuthModeMock,
		Token: config.TokenConfig{
			Secret:   "test-secret",
			Lifetime: time.Hour,
		},
	}
}

func TestBuildAuthServiceRequiresRedis(t *testing.T) {
	svc := BuildAuthService(AuthConfig{Auth: testAuthConfig()})
	assert.Nil(t, svc)
}

func TestBuildAuthServiceMockMode(t *testing.T) {
	// Client construction does not dial; no Redis needed for wiring.
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testAuthConfig()
	cfg.DevAuth = config.DevAuthConfig{UserID: "dev-user", Email: "dev@example.com"}

	svc := BuildAuthService(AuthConfig{
		Auth:        cfg,
		Session:     config.SessionConfig{Scope: "campus:session", TTL: time.Hour},
		RedisClient: client,
	})
	require.NotNil(t, svc)
	assert.NotNil(t, svc.Sessions())
}

func TestBuildAuthServiceOAuthMissingClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testAuthConfig()
	cfg.Mode = config.AuthModeOAuth // no client ID or secret

	svc := BuildAuthService(AuthConfig{
		Auth:        cfg,
		RedisClient: client,
	})
	assert.Nil(t, svc)
}

func TestBuildAuthServiceMissingTokenSecret(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testAuthConfig()
	cfg.Token.Secret = ""

	svc := BuildAuthService(AuthConfig{
		Auth:        cfg,
		RedisClient: client,
	})
	assert.Nil(t, svc)
}
