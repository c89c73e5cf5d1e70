package data

import (
	"context"
	"database/sql"

	"github.com/brightmath/campus-api/internal/data/pgxutil"
	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/jackc/pgx/v5"
)

// PurchaseRepo provides database operations for purchase records. It also
// answers entitlement checks: a user has access to a module when any
// purchase row links the two.
type PurchaseRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPurchaseRepo creates a new PurchaseRepo with real time provider.
func NewPurchaseRepo(db *sql.DB) *PurchaseRepo {
	return &PurchaseRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPurchaseRepoWithTimeProvider creates a new PurchaseRepo with a custom time provider (useful for tests).
func NewPurchaseRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PurchaseRepo {
	return &PurchaseRepo{DB: db, timeProvider: tp}
}

const (
	purchaseColumns = `id, user_id, module_id, kind, transaction_id, created_at`

	purchaseListByUserQuery = `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC`

	purchaseExistsQuery = `
		SELECT EXISTS(
			SELECT 1 FROM purchases WHERE user_id = $1 AND module_id = $2
		)`
)

// Create records a purchase. A duplicate user/module pair maps to a conflict.
func (r *PurchaseRepo) Create(ctx context.Context, req *model.CreatePurchaseRequest) (*model.Purchase, error) {
	if req == nil {
		return nil, apperrors.Validation("create purchase request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var txID *string
	if req.TransactionID != "" {
		txID = &req.TransactionID
	}

	var out model.Purchase
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO purchases (user_id, module_id, kind, transaction_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+purchaseColumns,
			req.UserID, req.ModuleID, req.Kind, txID, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Purchase])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByUser retrieves all purchases for a user, newest first.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	var out []model.Purchase
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, purchaseListByUserQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Purchase])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// HasAccess reports whether any purchase links the user to the module.
func (r *PurchaseRepo) HasAccess(ctx context.Context, userID, moduleID string) (bool, error) {
	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, purchaseExistsQuery, userID, moduleID).Scan(&exists)
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return exists, nil
}

// Revoke removes a user's purchase of a module. Returns false when no row matched.
func (r *PurchaseRepo) Revoke(ctx context.Context, userID, moduleID string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM purchases WHERE user_id = $1 AND module_id = $2`, userID, moduleID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return rows > 0, nil
}
