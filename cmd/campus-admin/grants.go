package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/brightmath/campus-api/internal/bootstrap"
	"github.com/brightmath/campus-api/internal/data"
	"github.com/brightmath/campus-api/internal/domain/model"
)

const defaultCommandTimeout = 2 * time.Minute

type grantOptions struct {
	UserID string
	Module string // module ID or slug
}

type listPurchasesOptions struct {
	UserID string
}

func runListModules(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-modules", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		modules, err := data.NewModuleRepo(db).List(ctx, false)
		if err != nil {
			return fmt.Errorf("list modules: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(w, "ID\tSLUG\tTITLE\tPRICE\tPUBLISHED\n"); err != nil {
			return err
		}
		for _, m := range modules {
			if err := writef(w, "%s\t%s\t%s\t%d\t%t\n",
				m.ID, m.Slug, m.Title, m.PriceCents, m.Published); err != nil {
				return err
			}
		}
		return w.Flush()
	})
}

func runGrantAccess(cmdCtx *commandContext, args []string) error {
	opts, err := parseGrantFlags("grant-access", args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		module, err := resolveModule(ctx, db, opts.Module)
		if err != nil {
			return err
		}

		purchase, err := data.NewPurchaseRepo(db).Create(ctx, &model.CreatePurchaseRequest{
			UserID:   opts.UserID,
			ModuleID: module.ID,
			Kind:     model.PurchaseKindGrant,
		})
		if err != nil {
			return fmt.Errorf("create grant: %w", err)
		}

		cmdCtx.Logger.Info("access granted",
			"purchase_id", purchase.ID,
			"user_id", opts.UserID,
			"module", module.Slug)
		return nil
	})
}

func runRevokeAccess(cmdCtx *commandContext, args []string) error {
	opts, err := parseGrantFlags("revoke-access", args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		module, err := resolveModule(ctx, db, opts.Module)
		if err != nil {
			return err
		}

		removed, err := data.NewPurchaseRepo(db).Revoke(ctx, opts.UserID, module.ID)
		if err != nil {
			return fmt.Errorf("revoke access: %w", err)
		}
		if !removed {
			return fmt.Errorf("no purchase found for user %q and module %q", opts.UserID, module.Slug)
		}

		cmdCtx.Logger.Info("access revoked", "user_id", opts.UserID, "module", module.Slug)
		return nil
	})
}

func runListPurchases(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-purchases", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listPurchasesOptions
	fs.StringVar(&opts.UserID, "user", "", "User ID whose purchases to list (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.UserID == "" {
		return errors.New("--user is required")
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		purchases, err := data.NewPurchaseRepo(db).ListByUser(ctx, opts.UserID)
		if err != nil {
			return fmt.Errorf("list purchases: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(w, "ID\tMODULE\tKIND\tTRANSACTION\tCREATED\n"); err != nil {
			return err
		}
		for _, p := range purchases {
			tx := "-"
			if p.TransactionID != nil {
				tx = *p.TransactionID
			}
			if err := writef(w, "%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.ModuleID, p.Kind, tx, p.CreatedAt.Format(time.RFC3339)); err != nil {
				return err
			}
		}
		return w.Flush()
	})
}

func runClearSession(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("clear-session", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 30*time.Second)
	defer cancel()

	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	scope := cmdCtx.Config.Session.Scope
	deleted, err := client.Del(ctx, scope+":token", scope+":user").Result()
	if err != nil {
		return fmt.Errorf("delete session keys: %w", err)
	}

	cmdCtx.Logger.Info("session cleared", "scope", scope, "keys_deleted", deleted)
	return nil
}

func parseGrantFlags(name string, args []string) (grantOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts grantOptions
	fs.StringVar(&opts.UserID, "user", "", "User ID (required)")
	fs.StringVar(&opts.Module, "module", "", "Module ID or slug (required)")

	if err := fs.Parse(args); err != nil {
		return grantOptions{}, err
	}
	if opts.UserID == "" {
		return grantOptions{}, errors.New("--user is required")
	}
	if opts.Module == "" {
		return grantOptions{}, errors.New("--module is required")
	}
	return opts, nil
}

// resolveModule accepts either a module ID or a slug.
func resolveModule(ctx context.Context, db *sql.DB, ref string) (*model.Module, error) {
	repo := data.NewModuleRepo(db)

	if module, err := repo.GetBySlug(ctx, ref); err == nil {
		return module, nil
	}
	module, err := repo.GetByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve module %q: %w", ref, err)
	}
	return module, nil
}
