// Package entitlement maintains the per-user module access table. It bulk
// loads access flags for the whole catalog with one concurrent check per
// module and answers lookups synchronously from the assembled table.
package entitlement

import (
	"context"
	"log/slog"
	"sync"

	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/brightmath/campus-api/internal/ports"
	"golang.org/x/sync/errgroup"
)

// CacheOptions configures a Cache.
type CacheOptions struct {
	Catalog  ports.CatalogRepository
	Checker  ports.EntitlementChecker
	Sessions ports.SessionStore
	// MaxConcurrent bounds the check fan-out. Zero means unbounded.
	MaxConcurrent int
	Logger        *slog.Logger
}

// Cache holds the entitlement table for the current user. Reads are
// synchronous against the last fully assembled table; a load in progress
// never exposes a partial table, callers see the previous one until the swap.
type Cache struct {
	catalog       ports.CatalogRepository
	checker       ports.EntitlementChecker
	sessions      ports.SessionStore
	maxConcurrent int
	logger        *slog.Logger

	mu       sync.RWMutex
	table    map[string]bool
	inflight int
}

// NewCache creates a Cache with an empty table and nothing loading.
func NewCache(opts CacheOptions) (*Cache, error) {
	if opts.Catalog == nil {
		return nil, apperrors.Validation("catalog repository is required")
	}
	if opts.Checker == nil {
		return nil, apperrors.Validation("entitlement checker is required")
	}
	if opts.Sessions == nil {
		return nil, apperrors.Validation("session store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Cache{
		catalog:       opts.Catalog,
		checker:       opts.Checker,
		sessions:      opts.Sessions,
		maxConcurrent: opts.MaxConcurrent,
		logger:        opts.Logger,
		table:         map[string]bool{},
	}, nil
}

// HasAccess reports whether the loaded table grants access to the module.
// Unknown modules are false, including while a load is still running; gate
// on Loading to distinguish "denied" from "not yet known".
func (c *Cache) HasAccess(moduleID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table[moduleID]
}

// Loading reports whether at least one load is still assembling its table.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Load rebuilds the entitlement table for the current user. Without an
// authenticated user it publishes an empty table without any network calls.
// Check failures are recorded as no-access for that module only; the load as
// a whole fails only when the session or catalog cannot be read.
//
// Concurrent loads do not cancel each other; each publishes its fully
// assembled table and the last one to finish wins.
func (c *Cache) Load(ctx context.Context) error {
	c.beginLoad()
	defer c.endLoad()

	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "read current session")
	}
	if sess == nil || !sess.IsAuthenticated() || sess.IsGuest() {
		c.publish(map[string]bool{})
		return nil
	}
	userID := sess.User.ID

	table, err := BuildTable(ctx, BuildTableOptions{
		Catalog:       c.catalog,
		Checker:       c.checker,
		UserID:        userID,
		MaxConcurrent: c.maxConcurrent,
		Logger:        c.logger,
	})
	if err != nil {
		return err
	}
	c.publish(table)
	return nil
}

// BuildTableOptions groups inputs for one entitlement fan-out.
type BuildTableOptions struct {
	Catalog       ports.CatalogRepository
	Checker       ports.EntitlementChecker
	UserID        string
	MaxConcurrent int
	Logger        *slog.Logger
}

// BuildTable runs one fan-out/fan-in pass over the published catalog and
// returns the fully assembled access table for the user. A failed check
// denies that module only; the pass fails only when the catalog is unreadable.
func BuildTable(ctx context.Context, opts BuildTableOptions) (map[string]bool, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	mods, err := opts.Catalog.List(ctx, true)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "list module catalog")
	}

	// Fan out one check per module, fan in before assembling. Results land
	// in a per-module slot so no locking is needed.
	results := make([]bool, len(mods))
	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxConcurrent > 0 {
		g.SetLimit(opts.MaxConcurrent)
	}
	for i, mod := range mods {
		g.Go(func() error {
			ok, err := opts.Checker.HasAccess(gctx, opts.UserID, mod.ID)
			if err != nil {
				// Fail closed for this module only.
				opts.Logger.WarnContext(gctx, "entitlement check failed, denying access",
					"module_id", mod.ID, "error", err)
				results[i] = false
				return nil
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "entitlement fan-out")
	}

	table := make(map[string]bool, len(mods))
	for i, mod := range mods {
		table[mod.ID] = results[i]
	}
	return table, nil
}

// Refresh re-runs Load from scratch. Used after a purchase completes so new
// entitlement shows up without waiting for the next mount.
func (c *Cache) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

func (c *Cache) beginLoad() {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
}

func (c *Cache) endLoad() {
	c.mu.Lock()
	c.inflight--
	c.mu.Unlock()
}

// publish swaps in a fully assembled table.
func (c *Cache) publish(table map[string]bool) {
	c.mu.Lock()
	c.table = table
	c.mu.Unlock()
}
