package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/ports"
	"github.com/brightmath/campus-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Catalog   *service.CatalogService
	Purchases *service.PurchaseService
	Sessions  ports.SessionStore
	// Verifier authenticates Bearer tokens on API routes. Usually the same
	// value as Auth.
	Verifier TokenVerifier

	BaseURL        string
	AllowedOrigins []string
	CookieDomain   string
	// PopupCloseDelay is how long the callback relay page waits before
	// closing its window.
	PopupCloseDelay time.Duration
	Logger          *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:            services.Auth,
		Sessions:       services.Sessions,
		BaseURL:        services.BaseURL,
		AllowedOrigins: services.AllowedOrigins,
		CookieDomain:   services.CookieDomain,
		CloseDelay:     services.PopupCloseDelay,
		Logger:         services.Logger,
	}
	moduleHandlers := &ModuleHandlers{Svc: services.Catalog}
	purchaseHandlers := &PurchaseHandlers{Svc: services.Purchases}

	registerAuthRoutes(mux, authHandlers)
	registerModuleRoutes(mux, moduleHandlers, services.Verifier)
	registerPurchaseRoutes(mux, purchaseHandlers, services.Verifier)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/google/login", h.Login)
	mux.HandleFunc("GET /auth/google/callback", h.Callback)
	mux.HandleFunc("POST /auth/social-login", h.SocialLogin)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}

func registerModuleRoutes(mux *http.ServeMux, h *ModuleHandlers, verifier TokenVerifier) {
	admin := RequireRole(verifier, domainauth.RoleAdmin)

	mux.Handle("GET /api/modules", OptionalAuth(verifier)(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/modules/{id}", OptionalAuth(verifier)(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/modules", admin(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/modules/{id}", admin(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/modules/{id}", admin(http.HandlerFunc(h.Delete)))
}

func registerPurchaseRoutes(mux *http.ServeMux, h *PurchaseHandlers, verifier TokenVerifier) {
	authed := RequireAuth(verifier)
	admin := RequireRole(verifier, domainauth.RoleAdmin)

	mux.Handle("POST /api/purchases", admin(http.HandlerFunc(h.Record)))
	mux.Handle("GET /api/purchases", authed(http.HandlerFunc(h.List)))
	mux.Handle("DELETE /api/purchases/{userID}/{moduleID}", admin(http.HandlerFunc(h.Revoke)))
	mux.Handle("GET /api/purchases/access", authed(http.HandlerFunc(h.Access)))
	mux.Handle("GET /api/purchases/access/bulk", authed(http.HandlerFunc(h.AccessBulk)))
}
