package service

import (
	"context"
	"log/slog"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/domain/model"
	"github.com/brightmath/campus-api/internal/entitlement"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/brightmath/campus-api/internal/ports"
)

// PurchaseServiceOptions groups dependencies for PurchaseService.
type PurchaseServiceOptions struct {
	Purchases ports.PurchaseRepository
	Catalog   ports.CatalogRepository
	Checker   ports.EntitlementChecker
	// MaxConcurrent bounds the entitlement fan-out for AccessTable.
	// Zero means unbounded.
	MaxConcurrent int
	Logger        *slog.Logger
}

// PurchaseService orchestrates purchase recording and access checks.
type PurchaseService struct {
	purchases     ports.PurchaseRepository
	catalog       ports.CatalogRepository
	checker       ports.EntitlementChecker
	maxConcurrent int
	logger        *slog.Logger
}

// NewPurchaseService constructs a new PurchaseService.
func NewPurchaseService(opts PurchaseServiceOptions) *PurchaseService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PurchaseService{
		purchases:     opts.Purchases,
		catalog:       opts.Catalog,
		checker:       opts.Checker,
		maxConcurrent: opts.MaxConcurrent,
		logger:        logger,
	}
}

// Record stores a purchase, granting the user access to the module.
func (s *PurchaseService) Record(ctx context.Context, req *model.CreatePurchaseRequest) (*model.Purchase, error) {
	return s.purchases.Create(ctx, req)
}

// ListByUser returns a user's purchases, newest first. Non-staff sessions
// can only list their own.
func (s *PurchaseService) ListByUser(ctx context.Context, sess *domainauth.Session, userID string) ([]model.Purchase, error) {
	if err := s.authorizeRead(sess, userID); err != nil {
		return nil, err
	}
	return s.purchases.ListByUser(ctx, userID)
}

// Revoke removes a user's access to a module. Returns false when no
// matching purchase existed.
func (s *PurchaseService) Revoke(ctx context.Context, userID, moduleID string) (bool, error) {
	return s.purchases.Revoke(ctx, userID, moduleID)
}

// HasAccess checks a single user/module pair. The session gates whose
// entitlements may be read: non-admins can only query their own.
func (s *PurchaseService) HasAccess(ctx context.Context, sess *domainauth.Session, userID, moduleID string) (bool, error) {
	if err := s.authorizeRead(sess, userID); err != nil {
		return false, err
	}
	return s.checker.HasAccess(ctx, userID, moduleID)
}

// AccessTable resolves a user's entitlement for every published module in
// one shot. Checks run concurrently and fail closed.
func (s *PurchaseService) AccessTable(ctx context.Context, sess *domainauth.Session, userID string) (map[string]bool, error) {
	if err := s.authorizeRead(sess, userID); err != nil {
		return nil, err
	}
	return entitlement.BuildTable(ctx, entitlement.BuildTableOptions{
		Catalog:       s.catalog,
		Checker:       s.checker,
		UserID:        userID,
		MaxConcurrent: s.maxConcurrent,
		Logger:        s.logger,
	})
}

func (s *PurchaseService) authorizeRead(sess *domainauth.Session, userID string) error {
	if userID == "" {
		return apperrors.Validation("userId is required")
	}
	if sess == nil || !sess.IsAuthenticated() {
		return apperrors.Unauthorized("authentication required")
	}
	if sess.User.Role == domainauth.RoleAdmin || sess.User.Role == domainauth.RoleTeacher {
		return nil
	}
	if sess.User.ID != userID {
		return apperrors.Forbidden("cannot read another user's entitlements")
	}
	return nil
}
