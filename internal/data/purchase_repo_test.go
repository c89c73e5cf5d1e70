package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/brightmath/campus-api/internal/testutil"
)

func uniqueUserID() string {
	return fmt.Sprintf("user-%d", time.Now().UnixNano())
}

func TestPurchaseRepo_Create_List_HasAccess_Revoke(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPurchaseRepo(db)

		mod := createTestModule(t, db, uniqueSlug("geometry"))
		userID := uniqueUserID()

		// no entitlement before purchase
		ok, err := repo.HasAccess(ctx, userID, mod.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		// create
		p, err := repo.Create(ctx, testutil.NewPurchaseRequest(userID, mod.ID).
			WithTransactionID("txn-123").
			Build())
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		assert.Equal(t, model.PurchaseKindPaid, p.Kind)
		require.NotNil(t, p.TransactionID)
		assert.Equal(t, "txn-123", *p.TransactionID)

		// entitled now
		ok, err = repo.HasAccess(ctx, userID, mod.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		// list
		lst, err := repo.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, mod.ID, lst[0].ModuleID)

		// revoke
		removed, err := repo.Revoke(ctx, userID, mod.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		ok, err = repo.HasAccess(ctx, userID, mod.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		removed, err = repo.Revoke(ctx, userID, mod.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestPurchaseRepo_Create_GrantWithoutTransaction(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPurchaseRepo(db)
		mod := createTestModule(t, db, uniqueSlug("grant"))

		p, err := repo.Create(ctx, testutil.NewPurchaseRequest(uniqueUserID(), mod.ID).
			WithKind(model.PurchaseKindGrant).
			Build())
		require.NoError(t, err)
		assert.Equal(t, model.PurchaseKindGrant, p.Kind)
		assert.Nil(t, p.TransactionID)
	})
}

func TestPurchaseRepo_Create_DuplicatePair(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPurchaseRepo(db)
		mod := createTestModule(t, db, uniqueSlug("dup-pair"))
		userID := uniqueUserID()

		_, err := repo.Create(ctx, testutil.NewPurchaseRequest(userID, mod.ID).Build())
		require.NoError(t, err)

		_, err = repo.Create(ctx, testutil.NewPurchaseRequest(userID, mod.ID).
			WithKind(model.PurchaseKindCoupon).
			Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestPurchaseRepo_Create_UnknownModule(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewPurchaseRepo(db)

		_, err := repo.Create(context.Background(), testutil.NewPurchaseRequest(
			uniqueUserID(), "00000000-0000-0000-0000-000000000000").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsForeignKey(err))
	})
}

func TestPurchaseRepo_Create_Validation(t *testing.T) {
	repo := NewPurchaseRepo(nil)

	_, err := repo.Create(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = repo.Create(context.Background(), &model.CreatePurchaseRequest{
		UserID:   "u1",
		ModuleID: "m1",
		Kind:     "refund",
	})
	assert.True(t, apperrors.IsValidation(err))
}
