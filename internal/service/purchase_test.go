package service

import (
	"context"
	"testing"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/brightmath/campus-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func studentSession(id string) *domainauth.Session {
	return &domainauth.Session{
		Token: "tok-" + id,
		User:  domainauth.UserRecord{ID: id, Role: domainauth.RoleStudent},
	}
}

func adminSession() *domainauth.Session {
	return &domainauth.Session{
		Token: "tok-admin",
		User:  domainauth.UserRecord{ID: "admin-1", Role: domainauth.RoleAdmin},
	}
}

func newPurchaseService(t *testing.T) (*PurchaseService, *mocks.MockPurchaseRepository, *mocks.MockCatalogRepository, *mocks.MockEntitlementChecker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	purchases := mocks.NewMockPurchaseRepository(ctrl)
	catalog := mocks.NewMockCatalogRepository(ctrl)
	checker := mocks.NewMockEntitlementChecker(ctrl)
	svc := NewPurchaseService(PurchaseServiceOptions{
		Purchases: purchases,
		Catalog:   catalog,
		Checker:   checker,
	})
	return svc, purchases, catalog, checker
}

func TestHasAccessAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("nil session rejected", func(t *testing.T) {
		svc, _, _, _ := newPurchaseService(t)
		_, err := svc.HasAccess(ctx, nil, "u1", "m1")
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("student cannot read another user", func(t *testing.T) {
		svc, _, _, _ := newPurchaseService(t)
		_, err := svc.HasAccess(ctx, studentSession("u1"), "u2", "m1")
		assert.True(t, apperrors.IsForbidden(err))
	})

	t.Run("student reads own entitlement", func(t *testing.T) {
		svc, _, _, checker := newPurchaseService(t)
		checker.EXPECT().HasAccess(ctx, "u1", "m1").Return(true, nil)
		got, err := svc.HasAccess(ctx, studentSession("u1"), "u1", "m1")
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		svc, _, _, checker := newPurchaseService(t)
		checker.EXPECT().HasAccess(ctx, "u2", "m1").Return(false, nil)
		got, err := svc.HasAccess(ctx, adminSession(), "u2", "m1")
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("empty user id rejected", func(t *testing.T) {
		svc, _, _, _ := newPurchaseService(t)
		_, err := svc.HasAccess(ctx, adminSession(), "", "m1")
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestAccessTableDelegatesToFanOut(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog, checker := newPurchaseService(t)

	catalog.EXPECT().List(gomock.Any(), true).Return([]model.Module{
		{ID: "m1", Published: true},
		{ID: "m2", Published: true},
		{ID: "m3", Published: true},
	}, nil)
	checker.EXPECT().HasAccess(gomock.Any(), "u1", "m1").Return(true, nil)
	checker.EXPECT().HasAccess(gomock.Any(), "u1", "m2").Return(false, nil)
	checker.EXPECT().HasAccess(gomock.Any(), "u1", "m3").Return(true, nil)

	table, err := svc.AccessTable(ctx, studentSession("u1"), "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"m1": true, "m2": false, "m3": true}, table)
}

func TestAccessTableForbiddenSkipsWork(t *testing.T) {
	// No catalog or checker expectations: authorization fails first.
	svc, _, _, _ := newPurchaseService(t)

	_, err := svc.AccessTable(context.Background(), studentSession("u1"), "u2")
	assert.True(t, apperrors.IsForbidden(err))
}

func TestListByUserAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, purchases, _, _ := newPurchaseService(t)

	purchases.EXPECT().ListByUser(ctx, "u1").
		Return([]model.Purchase{{ID: "p1", UserID: "u1"}}, nil)

	got, err := svc.ListByUser(ctx, studentSession("u1"), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListByUser(ctx, studentSession("u1"), "u2")
	assert.True(t, apperrors.IsForbidden(err))
}

func TestRecordAndRevokeDelegate(t *testing.T) {
	ctx := context.Background()
	svc, purchases, _, _ := newPurchaseService(t)

	req := &model.CreatePurchaseRequest{UserID: "u1", ModuleID: "m1", Kind: model.PurchaseKindGrant}
	purchases.EXPECT().Create(ctx, req).Return(&model.Purchase{ID: "p1"}, nil)
	created, err := svc.Record(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)

	purchases.EXPECT().Revoke(ctx, "u1", "m1").Return(true, nil)
	ok, err := svc.Revoke(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, ok)
}
