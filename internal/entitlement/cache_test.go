package entitlement

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/domain/model"
	"github.com/brightmath/campus-api/internal/mocks"
	mockauth "github.com/brightmath/campus-api/internal/mocks/auth"
)

type fakeCatalog struct {
	mods  []model.Module
	err   error
	calls atomic.Int64
}

func (f *fakeCatalog) List(_ context.Context, _ bool) ([]model.Module, error) {
	f.calls.Add(1)
	return f.mods, f.err
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*model.Module, error) {
	for i := range f.mods {
		if f.mods[i].ID == id {
			return &f.mods[i], nil
		}
	}
	return nil, errors.New("not found")
}

type fakeChecker struct {
	fn    func(ctx context.Context, userID, moduleID string) (bool, error)
	calls atomic.Int64
}

func (f *fakeChecker) HasAccess(ctx context.Context, userID, moduleID string) (bool, error) {
	f.calls.Add(1)
	return f.fn(ctx, userID, moduleID)
}

func catalogOf(ids ...string) []model.Module {
	mods := make([]model.Module, len(ids))
	for i, id := range ids {
		mods[i] = model.Module{ID: id, Title: "Module " + id, Published: true}
	}
	return mods
}

func studentStore(t *testing.T) *mockauth.MemorySessionStore {
	t.Helper()
	store := mockauth.NewMemorySessionStore()
	require.NoError(t, store.Set(t.Context(), domainauth.Session{
		Token: "jwt-1",
		User:  domainauth.UserRecord{ID: "u1", Email: "ada@example.com", Role: domainauth.RoleStudent},
	}))
	return store
}

func newTestCache(t *testing.T, catalog *fakeCatalog, checker *fakeChecker, store *mockauth.MemorySessionStore) *Cache {
	t.Helper()
	c, err := NewCache(CacheOptions{Catalog: catalog, Checker: checker, Sessions: store})
	require.NoError(t, err)
	return c
}

func TestCacheLoadFanOut(t *testing.T) {
	// Checks resolve in reverse order of request; the table must still be
	// complete and correct, and only published after the slowest check.
	catalog := &fakeCatalog{mods: catalogOf("algebra", "geometry")}
	checker := &fakeChecker{fn: func(_ context.Context, userID, moduleID string) (bool, error) {
		assert.Equal(t, "u1", userID)
		switch moduleID {
		case "algebra":
			time.Sleep(50 * time.Millisecond)
			return true, nil
		default:
			time.Sleep(5 * time.Millisecond)
			return false, nil
		}
	}}
	c := newTestCache(t, catalog, checker, studentStore(t))

	start := time.Now()
	require.NoError(t, c.Load(t.Context()))

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	// Well under the 55ms a sequential walk would need plus margin; the
	// slowest check dominates, not the sum.
	assert.Less(t, time.Since(start), 200*time.Millisecond)
	assert.True(t, c.HasAccess("algebra"))
	assert.False(t, c.HasAccess("geometry"))
	assert.False(t, c.Loading())
	assert.EqualValues(t, 2, checker.calls.Load())
}

func TestCacheChecksFireConcurrently(t *testing.T) {
	const n = 8
	catalog := &fakeCatalog{mods: catalogOf("m0", "m1", "m2", "m3", "m4", "m5", "m6", "m7")}

	// Every check blocks until all n have started; a sequential cache
	// would deadlock here.
	var wg sync.WaitGroup
	wg.Add(n)
	checker := &fakeChecker{fn: func(ctx context.Context, _, _ string) (bool, error) {
		wg.Done()
		wg.Wait()
		return true, nil
	}}
	c := newTestCache(t, catalog, checker, studentStore(t))

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("checks were not all in flight together")
	}
	for _, mod := range catalog.mods {
		assert.True(t, c.HasAccess(mod.ID))
	}
}

func TestCacheFaultIsolation(t *testing.T) {
	catalog := &fakeCatalog{mods: catalogOf("algebra", "geometry")}
	checker := &fakeChecker{fn: func(_ context.Context, _, moduleID string) (bool, error) {
		if moduleID == "geometry" {
			return false, errors.New("gateway returned 502")
		}
		return true, nil
	}}
	c := newTestCache(t, catalog, checker, studentStore(t))

	require.NoError(t, c.Load(t.Context()), "one failing check must not fail the load")
	assert.True(t, c.HasAccess("algebra"))
	assert.False(t, c.HasAccess("geometry"))
}

func TestCacheGuestPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No EXPECT calls: any catalog or checker traffic fails the test.
	catalog := mocks.NewMockCatalogRepository(ctrl)
	checker := mocks.NewMockEntitlementChecker(ctrl)

	t.Run("no session", func(t *testing.T) {
		store := mockauth.NewMemorySessionStore()
		c, err := NewCache(CacheOptions{Catalog: catalog, Checker: checker, Sessions: store})
		require.NoError(t, err)

		require.NoError(t, c.Load(t.Context()))
		assert.False(t, c.HasAccess("algebra"))
		assert.False(t, c.Loading())
	})

	t.Run("guest role", func(t *testing.T) {
		store := mockauth.NewMemorySessionStore()
		require.NoError(t, store.Set(t.Context(), domainauth.Session{
			Token: "jwt-guest",
			User:  domainauth.UserRecord{ID: "g1", Role: domainauth.RoleGuest},
		}))
		c, err := NewCache(CacheOptions{Catalog: catalog, Checker: checker, Sessions: store})
		require.NoError(t, err)

		require.NoError(t, c.Load(t.Context()))
		assert.False(t, c.HasAccess("algebra"))
	})
}

func TestCacheCatalogFailureKeepsOldTable(t *testing.T) {
	catalog := &fakeCatalog{mods: catalogOf("algebra")}
	checker := &fakeChecker{fn: func(context.Context, string, string) (bool, error) {
		return true, nil
	}}
	c := newTestCache(t, catalog, checker, studentStore(t))
	require.NoError(t, c.Load(t.Context()))
	require.True(t, c.HasAccess("algebra"))

	catalog.err = errors.New("catalog unavailable")
	err := c.Load(t.Context())
	require.Error(t, err)
	assert.True(t, c.HasAccess("algebra"), "failed reload must not clobber the table")
	assert.False(t, c.Loading())
}

func TestCacheOldTableReadableDuringReload(t *testing.T) {
	catalog := &fakeCatalog{mods: catalogOf("algebra")}

	gate := make(chan struct{})
	var slow atomic.Bool
	checker := &fakeChecker{fn: func(context.Context, string, string) (bool, error) {
		if slow.Load() {
			<-gate
			return false, nil
		}
		return true, nil
	}}
	c := newTestCache(t, catalog, checker, studentStore(t))
	require.NoError(t, c.Load(t.Context()))
	require.True(t, c.HasAccess("algebra"))

	slow.Store(true)
	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()

	require.Eventually(t, c.Loading, time.Second, time.Millisecond)
	assert.True(t, c.HasAccess("algebra"), "previous table stays readable mid-reload")

	close(gate)
	require.NoError(t, <-done)
	assert.False(t, c.HasAccess("algebra"), "reload result replaces the table")
	assert.False(t, c.Loading())
}

func TestCacheRefreshLastWriteWins(t *testing.T) {
	catalog := &fakeCatalog{mods: catalogOf("algebra")}

	// First load stalls until released; the refresh completes first with a
	// grant. When the stale load finally publishes its denial, that later
	// write wins, matching the no-cancellation contract.
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var call atomic.Int64
	checker := &fakeChecker{fn: func(context.Context, string, string) (bool, error) {
		if call.Add(1) == 1 {
			close(firstStarted)
			<-releaseFirst
			return false, nil
		}
		return true, nil
	}}
	c := newTestCache(t, catalog, checker, studentStore(t))

	first := make(chan error, 1)
	go func() { first <- c.Load(context.Background()) }()
	<-firstStarted

	require.NoError(t, c.Refresh(t.Context()))
	assert.True(t, c.HasAccess("algebra"), "completed refresh published its table")
	assert.True(t, c.Loading(), "the stale load is still in flight")

	close(releaseFirst)
	require.NoError(t, <-first)
	assert.False(t, c.HasAccess("algebra"), "last-resolving load owns the table")
	assert.False(t, c.Loading())
}

func TestNewCacheValidation(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	catalog := &fakeCatalog{}
	checker := &fakeChecker{}

	_, err := NewCache(CacheOptions{Checker: checker, Sessions: store})
	assert.Error(t, err)
	_, err = NewCache(CacheOptions{Catalog: catalog, Sessions: store})
	assert.Error(t, err)
	_, err = NewCache(CacheOptions{Catalog: catalog, Checker: checker})
	assert.Error(t, err)
}
