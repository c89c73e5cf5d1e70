package bootstrap

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/brightmath/campus-api/config"
	"github.com/brightmath/campus-api/internal/adapters/gateway"
	"github.com/brightmath/campus-api/internal/data"
	"github.com/brightmath/campus-api/internal/ports"
	"github.com/brightmath/campus-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Purchases *service.PurchaseService
}

// ServicesConfig contains dependencies for building the service container.
type ServicesConfig struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices wires repositories, adapters, and services.
func BuildServices(cfg ServicesConfig) (ServiceContainer, error) {
	moduleRepo := data.NewModuleRepo(cfg.DB)
	purchaseRepo := data.NewPurchaseRepo(cfg.DB)

	checker, err := buildEntitlementChecker(cfg, purchaseRepo)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth: BuildAuthService(AuthConfig{
			Auth:        cfg.Config.Auth,
			Session:     cfg.Config.Session,
			RedisClient: cfg.RedisClient,
			Logger:      cfg.Logger,
		}),
		Catalog: service.NewCatalogService(service.CatalogServiceOptions{
			Modules: moduleRepo,
		}),
		Purchases: service.NewPurchaseService(service.PurchaseServiceOptions{
			Purchases:     purchaseRepo,
			Catalog:       moduleRepo,
			Checker:       checker,
			MaxConcurrent: cfg.Config.Entitlement.MaxConcurrent,
			Logger:        cfg.Logger,
		}),
	}, nil
}

// buildEntitlementChecker picks where access answers come from: the local
// purchases table, or a remote payment gateway.
//
//nolint:ireturn // the source decides which checker implementation backs the port.
func buildEntitlementChecker(cfg ServicesConfig, purchases *data.PurchaseRepo) (ports.EntitlementChecker, error) {
	if cfg.Config.Entitlement.Source == config.EntitlementSourceGateway {
		return gateway.NewChecker(gateway.Config{
			BaseURL:    cfg.Config.Gateway.BaseURL,
			APIKey:     cfg.Config.Gateway.APIKey,
			AccessExpr: cfg.Config.Gateway.AccessExpr,
			HTTPClient: &http.Client{Timeout: cfg.Config.Gateway.Timeout},
		})
	}
	return purchases, nil
}
