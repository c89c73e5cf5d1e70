// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// repository and checker ports. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockCatalogRepository(ctrl)
//	mockRepo.EXPECT().List(gomock.Any(), true).Return(modules, nil)
package mocks

// Generate mock for CatalogRepository interface from internal/ports.
// This creates MockCatalogRepository with methods: List, GetByID.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=catalog_repository_mock.go github.com/brightmath/campus-api/internal/ports CatalogRepository

// Generate mock for ModuleRepository interface from internal/ports.
// This creates MockModuleRepository with full catalog CRUD methods.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=module_repository_mock.go github.com/brightmath/campus-api/internal/ports ModuleRepository

// Generate mock for PurchaseRepository interface from internal/ports.
// This creates MockPurchaseRepository with methods: Create, ListByUser, Revoke.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=purchase_repository_mock.go github.com/brightmath/campus-api/internal/ports PurchaseRepository

// Generate mock for EntitlementChecker interface from internal/ports.
// This creates MockEntitlementChecker with methods: HasAccess.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=entitlement_checker_mock.go github.com/brightmath/campus-api/internal/ports EntitlementChecker
