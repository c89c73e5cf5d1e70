package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/brightmath/campus-api/internal/data"
	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB        *sql.DB
	modules   *data.ModuleRepo
	purchases *data.PurchaseRepo
}

// NewServices constructs the repositories used for seeding against the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:        db,
		modules:   data.NewModuleRepo(db),
		purchases: data.NewPurchaseRepo(db),
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Seeding is idempotent: modules that already exist are left untouched.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	seeded := map[string]string{}

	for _, req := range defaultModules() {
		module, created, err := createModule(ctx, svcs.modules, req)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create module", "slug", req.Slug, "error", err)
			}
			failures++
			continue
		}
		seeded[req.Slug] = module.ID
		if logger != nil {
			msg := "module already exists"
			if created {
				msg = "created module"
			}
			logger.InfoContext(ctx, msg, "slug", req.Slug, "id", module.ID)
		}
	}

	failures += seedDemoGrants(ctx, svcs.purchases, seeded, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func createModule(ctx context.Context, repo *data.ModuleRepo, req *model.CreateModuleRequest) (*model.Module, bool, error) {
	created, err := repo.Create(ctx, req)
	if err == nil {
		return created, true, nil
	}
	if apperrors.IsConflict(err) {
		existing, getErr := repo.GetBySlug(ctx, req.Slug)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	return nil, false, err
}

func defaultModules() []*model.CreateModuleRequest {
	return []*model.CreateModuleRequest{
		{
			Title:       "Algebra Basics",
			Slug:        "algebra-basics",
			Description: "Equations, inequalities, and working with unknowns.",
			PriceCents:  4900,
			Published:   true,
		},
		{
			Title:       "Fractions and Decimals",
			Slug:        "fractions-decimals",
			Description: "From pizza slices to percentages.",
			PriceCents:  3900,
			Published:   true,
		},
		{
			Title:       "Geometry Foundations",
			Slug:        "geometry-foundations",
			Description: "Angles, areas, and the shapes around us.",
			PriceCents:  4900,
			Published:   true,
		},
		{
			Title:       "Probability Playground",
			Slug:        "probability-playground",
			Description: "Dice, cards, and making sense of chance.",
			PriceCents:  5900,
			Published:   false,
		},
	}
}

// seedDemoGrants gives the dev user access to the first seeded module so the
// entitlement table has something to show.
func seedDemoGrants(ctx context.Context, repo *data.PurchaseRepo, seeded map[string]string, logger *slog.Logger) int {
	moduleID, ok := seeded["algebra-basics"]
	if !ok {
		return 0
	}

	_, err := repo.Create(ctx, &model.CreatePurchaseRequest{
		UserID:   "dev-user",
		ModuleID: moduleID,
		Kind:     model.PurchaseKindGrant,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			if logger != nil {
				logger.InfoContext(ctx, "demo grant already exists", "module_id", moduleID)
			}
			return 0
		}
		if logger != nil {
			logger.ErrorContext(ctx, "failed to create demo grant", "module_id", moduleID, "error", err)
		}
		return 1
	}

	if logger != nil {
		logger.InfoContext(ctx, "created demo grant", "user_id", "dev-user", "module_id", moduleID)
	}
	return 0
}
