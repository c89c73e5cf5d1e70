package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func parseConfig(t *testing.T) *AppConfig {
	t.Helper()
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()
	return &cfg
}

func TestAppConfigDefaults(t *testing.T) {
	cfg := parseConfig(t)

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected HTTP.Addr=:8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Name != "campus" {
		t.Errorf("unexpected Postgres defaults: %+v", cfg.Postgres)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("expected Redis.URI=localhost:6379, got %s", cfg.Redis.URI)
	}
	if cfg.Session.Scope != "campus:session" {
		t.Errorf("expected Session.Scope=campus:session, got %s", cfg.Session.Scope)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected Session.TTL=24h, got %s", cfg.Session.TTL)
	}
	if cfg.Auth.Mode != AuthModeOAuth {
		t.Errorf("expected Auth.Mode=oauth, got %s", cfg.Auth.Mode)
	}
	if cfg.Auth.Token.Issuer != "campus-api" {
		t.Errorf("expected Token.Issuer=campus-api, got %s", cfg.Auth.Token.Issuer)
	}
	if cfg.Entitlement.Source != EntitlementSourceDB {
		t.Errorf("expected Entitlement.Source=db, got %s", cfg.Entitlement.Source)
	}
	if cfg.Gateway.AccessExpr != "hasAccess" {
		t.Errorf("expected Gateway.AccessExpr=hasAccess, got %s", cfg.Gateway.AccessExpr)
	}
}

func TestAppConfigEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("ADMIN_EMAILS", "root@brightmath.io; ops@brightmath.io ;")
	t.Setenv("ENTITLEMENT_SOURCE", "gateway")
	t.Setenv("GATEWAY_BASE_URL", "https://pay.example.com")
	t.Setenv("SESSION_TTL", "30m")

	cfg := parseConfig(t)

	if cfg.Auth.Mode != AuthModeMock {
		t.Errorf("expected Auth.Mode=mock, got %s", cfg.Auth.Mode)
	}
	if len(cfg.Auth.AdminEmails) != 2 || cfg.Auth.AdminEmails[0] != "root@brightmath.io" {
		t.Errorf("unexpected AdminEmails: %v", cfg.Auth.AdminEmails)
	}
	if cfg.Entitlement.Source != EntitlementSourceGateway {
		t.Errorf("expected Entitlement.Source=gateway, got %s", cfg.Entitlement.Source)
	}
	if cfg.Gateway.BaseURL != "https://pay.example.com" {
		t.Errorf("unexpected Gateway.BaseURL: %s", cfg.Gateway.BaseURL)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("expected Session.TTL=30m, got %s", cfg.Session.TTL)
	}
}

func TestAppConfigInvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "saml")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for invalid AUTH_MODE")
	}
}

func TestAppConfigAllowedOriginsDefault(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://campus.example.com/")

	cfg := parseConfig(t)

	if len(cfg.Auth.AllowedOrigins) != 1 || cfg.Auth.AllowedOrigins[0] != "https://campus.example.com" {
		t.Errorf("unexpected AllowedOrigins: %v", cfg.Auth.AllowedOrigins)
	}
}

func TestAppConfigDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := parseConfig(t)
	if !cfg.IsDev {
		t.Error("expected IsDev=true when NODE_ENV=development")
	}
}
