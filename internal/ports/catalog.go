package ports

import (
	"context"

	"github.com/brightmath/campus-api/internal/domain/model"
)

// CatalogRepository provides read access to the module catalog.
type CatalogRepository interface {
	// List returns the catalog. When publishedOnly is true, drafts are omitted.
	List(ctx context.Context, publishedOnly bool) ([]model.Module, error)

	// GetByID returns a single module.
	GetByID(ctx context.Context, id string) (*model.Module, error)
}

// ModuleRepository provides full read/write access to the module catalog.
type ModuleRepository interface {
	CatalogRepository

	Create(ctx context.Context, req *model.CreateModuleRequest) (*model.Module, error)
	GetBySlug(ctx context.Context, slug string) (*model.Module, error)
	Update(ctx context.Context, id string, req model.UpdateModuleRequest) (*model.Module, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PurchaseRepository provides access to recorded purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, req *model.CreatePurchaseRequest) (*model.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]model.Purchase, error)
	Revoke(ctx context.Context, userID, moduleID string) (bool, error)
}

// EntitlementChecker answers whether a user may access a module.
// Implementations are expected to fail closed: when a check cannot be
// completed the caller records "no access" for that module.
type EntitlementChecker interface {
	HasAccess(ctx context.Context, userID, moduleID string) (bool, error)
}
