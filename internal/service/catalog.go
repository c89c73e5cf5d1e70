package service

import (
	"context"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/domain/model"
	"github.com/brightmath/campus-api/internal/ports"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Modules ports.ModuleRepository
}

// CatalogService orchestrates module catalog CRUD.
type CatalogService struct {
	modules ports.ModuleRepository
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	return &CatalogService{modules: opts.Modules}
}

// Create creates a catalog module.
func (s *CatalogService) Create(ctx context.Context, req *model.CreateModuleRequest) (*model.Module, error) {
	return s.modules.Create(ctx, req)
}

// GetByID retrieves a module by ID.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*model.Module, error) {
	return s.modules.GetByID(ctx, id)
}

// GetBySlug retrieves a module by its URL slug.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*model.Module, error) {
	return s.modules.GetBySlug(ctx, slug)
}

// ListFor returns the catalog visible to the given session. Admins and
// teachers see drafts; everyone else only published modules.
func (s *CatalogService) ListFor(ctx context.Context, sess *domainauth.Session) ([]model.Module, error) {
	publishedOnly := true
	if sess != nil {
		switch sess.User.Role {
		case domainauth.RoleAdmin, domainauth.RoleTeacher:
			publishedOnly = false
		}
	}
	return s.modules.List(ctx, publishedOnly)
}

// Update applies a partial update to a module.
func (s *CatalogService) Update(ctx context.Context, id string, req model.UpdateModuleRequest) (*model.Module, error) {
	return s.modules.Update(ctx, id, req)
}

// Delete removes a module. Returns false when no module had that ID.
func (s *CatalogService) Delete(ctx context.Context, id string) (bool, error) {
	return s.modules.Delete(ctx, id)
}
