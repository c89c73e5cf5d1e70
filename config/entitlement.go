package config

import (
	"fmt"
	"strings"
	"time"
)

// EntitlementSource selects where module access checks are answered.
type EntitlementSource string

const (
	// EntitlementSourceDB answers checks from this service's purchase records.
	EntitlementSourceDB EntitlementSource = "db"
	// EntitlementSourceGateway proxies checks to the external purchase API.
	EntitlementSourceGateway EntitlementSource = "gateway"
)

// UnmarshalText implements encoding.TextUnmarshaler for EntitlementSource.
func (s *EntitlementSource) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "db", "gateway":
		*s = EntitlementSource(v)
		return nil
	default:
		return fmt.Errorf("invalid EntitlementSource: %q (valid options: db, gateway)", v)
	}
}

// GatewayConfig configures the external purchase-verification API used when
// the entitlement source is "gateway".
type GatewayConfig struct {
	BaseURL string        `env:"BASE_URL"`
	APIKey  string        `env:"API_KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// AccessExpr is the JMESPath expression that extracts the boolean
	// access flag from the gateway response.
	AccessExpr string `env:"ACCESS_EXPR" envDefault:"hasAccess"`
}

// EntitlementConfig groups entitlement cache configuration.
type EntitlementConfig struct {
	Source EntitlementSource `env:"ENTITLEMENT_SOURCE" envDefault:"db"`

	// MaxConcurrent bounds the per-load check fan-out. Zero means unbounded.
	MaxConcurrent int `env:"ENTITLEMENT_MAX_CONCURRENT" envDefault:"0"`
}

// Sanitize applies guardrails to entitlement configuration values.
func (e *EntitlementConfig) Sanitize() {
	if e.MaxConcurrent < 0 {
		e.MaxConcurrent = 0
	}
}
