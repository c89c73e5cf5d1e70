package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/brightmath/campus-api/internal/data/pgxutil"
	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/jackc/pgx/v5"
)

// ModuleRepo provides database operations for catalog modules.
type ModuleRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewModuleRepo creates a new ModuleRepo with real time provider.
func NewModuleRepo(db *sql.DB) *ModuleRepo {
	return &ModuleRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewModuleRepoWithTimeProvider creates a new ModuleRepo with a custom time provider (useful for tests).
func NewModuleRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ModuleRepo {
	return &ModuleRepo{DB: db, timeProvider: tp}
}

const (
	moduleColumns = `id, title, slug, description, price_cents, published, created_at, updated_at`

	moduleGetByIDQuery = `
		SELECT ` + moduleColumns + `
		FROM modules
		WHERE id = $1`

	moduleGetBySlugQuery = `
		SELECT ` + moduleColumns + `
		FROM modules
		WHERE slug = $1`

	moduleListQuery = `
		SELECT ` + moduleColumns + `
		FROM modules
		WHERE ($1 = false OR published = true)
		ORDER BY created_at ASC`
)

// Create inserts a new module.
func (r *ModuleRepo) Create(ctx context.Context, req *model.CreateModuleRequest) (*model.Module, error) {
	if req == nil {
		return nil, apperrors.Validation("create module request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Module
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO modules (title, slug, description, price_cents, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+moduleColumns,
			req.Title, req.Slug, req.Description, req.PriceCents, req.Published, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Module])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a module by ID.
func (r *ModuleRepo) GetByID(ctx context.Context, id string) (*model.Module, error) {
	return r.getByQuery(ctx, moduleGetByIDQuery, id)
}

// GetBySlug retrieves a module by its URL slug.
func (r *ModuleRepo) GetBySlug(ctx context.Context, slug string) (*model.Module, error) {
	return r.getByQuery(ctx, moduleGetBySlugQuery, strings.ToLower(slug))
}

// List retrieves all modules, optionally restricted to the published catalog.
func (r *ModuleRepo) List(ctx context.Context, publishedOnly bool) ([]model.Module, error) {
	var out []model.Module
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, moduleListQuery, publishedOnly)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Module])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// Update updates fields of a module. Nil request fields are left unchanged.
func (r *ModuleRepo) Update(ctx context.Context, id string, req model.UpdateModuleRequest) (*model.Module, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	if setClause == "" {
		return r.GetByID(ctx, id)
	}

	var out model.Module
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE modules SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + moduleColumns
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Module])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func (r *ModuleRepo) buildUpdateClause(req model.UpdateModuleRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Description))
	}
	if req.PriceCents != nil {
		setParts = append(setParts, fmt.Sprintf("price_cents = $%d", nextIdx()))
		args = append(args, *req.PriceCents)
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
	}
	if len(setParts) == 0 {
		return "", nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a module by ID. Returns false when no row matched.
func (r *ModuleRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
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

func (r *ModuleRepo) getByQuery(ctx context.Context, query string, arg any) (*model.Module, error) {
	var out model.Module
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Module])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
