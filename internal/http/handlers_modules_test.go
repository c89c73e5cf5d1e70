package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/domain/model"
	apperrors "github.com/brightmath/campus-api/internal/errors"
	"github.com/brightmath/campus-api/internal/mocks"
	mocksauth "github.com/brightmath/campus-api/internal/mocks/auth"
	"github.com/brightmath/campus-api/internal/ports"
	"github.com/brightmath/campus-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type catalogTestEnv struct {
	modules *mocks.MockModuleRepository
	issuer  *mocksauth.StaticTokenIssuer
	router  http.Handler
}

func newCatalogTestEnv(t *testing.T) *catalogTestEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	modules := mocks.NewMockModuleRepository(ctrl)
	issuer := &mocksauth.StaticTokenIssuer{}
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Providers: map[string]ports.AuthProvider{"google": mocksauth.NewMockAuthProvider()},
		Sessions:  mocksauth.NewMemorySessionStore(),
		Roles:     mocksauth.StaticRoleMapper{},
		Tokens:    issuer,
	})

	router := NewRouter(RouterServices{
		Auth:     authSvc,
		Sessions: mocksauth.NewMemorySessionStore(),
		Verifier: authSvc,
		Catalog:  service.NewCatalogService(service.CatalogServiceOptions{Modules: modules}),
		BaseURL:  testBaseURL,
	})

	return &catalogTestEnv{modules: modules, issuer: issuer, router: router}
}

// bearerFor mints a token the router's verifier will accept.
func (env *catalogTestEnv) bearerFor(t *testing.T, user domainauth.UserRecord) string {
	t.Helper()
	token, err := env.issuer.Issue(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func adminUser() domainauth.UserRecord {
	return domainauth.UserRecord{ID: "admin-1", Email: "admin@example.com", Role: domainauth.RoleAdmin}
}

func studentUser() domainauth.UserRecord {
	return domainauth.UserRecord{ID: "student-1", Email: "kid@example.com", Role: domainauth.RoleStudent}
}

func TestListModulesAnonymousSeesPublishedOnly(t *testing.T) {
	env := newCatalogTestEnv(t)

	published := []model.Module{{ID: "m1", Title: "Algebra", Slug: "algebra", Published: true}}
	env.modules.EXPECT().List(gomock.Any(), true).Return(published, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/modules", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var got []model.Module
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
}

func TestListModulesAdminSeesDrafts(t *testing.T) {
	env := newCatalogTestEnv(t)

	env.modules.EXPECT().List(gomock.Any(), false).Return([]model.Module{}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/modules", nil)
	r.Header.Set("Authorization", env.bearerFor(t, adminUser()))
	env.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetModuleNotFound(t *testing.T) {
	env := newCatalogTestEnv(t)

	env.modules.EXPECT().GetByID(gomock.Any(), "nope").
		Return(nil, apperrors.NotFound("module not found"))

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/modules/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateModuleRequiresAdmin(t *testing.T) {
	env := newCatalogTestEnv(t)
	body := `{"title":"Geometry","slug":"geometry","price":2900}`

	t.Run("unauthenticated -> 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/modules", strings.NewReader(body))
		env.router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("student -> 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/modules", strings.NewReader(body))
		r.Header.Set("Authorization", env.bearerFor(t, studentUser()))
		env.router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin -> 201", func(t *testing.T) {
		env.modules.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req *model.CreateModuleRequest) (*model.Module, error) {
				assert.Equal(t, "geometry", req.Slug)
				return &model.Module{ID: "m2", Title: req.Title, Slug: req.Slug, PriceCents: req.PriceCents}, nil
			})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/modules", strings.NewReader(body))
		r.Header.Set("Authorization", env.bearerFor(t, adminUser()))
		env.router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got model.Module
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "m2", got.ID)
	})
}

func TestCreateModuleConflictMapsTo409(t *testing.T) {
	env := newCatalogTestEnv(t)

	env.modules.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("module with this slug already exists"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/modules",
		strings.NewReader(`{"title":"Algebra","slug":"algebra"}`))
	r.Header.Set("Authorization", env.bearerFor(t, adminUser()))
	env.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateModulePartial(t *testing.T) {
	env := newCatalogTestEnv(t)

	env.modules.EXPECT().Update(gomock.Any(), "m1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, req model.UpdateModuleRequest) (*model.Module, error) {
			require.NotNil(t, req.Published)
			assert.True(t, *req.Published)
			assert.Nil(t, req.Title)
			return &model.Module{ID: "m1", Published: true}, nil
		})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/api/modules/m1",
		strings.NewReader(`{"published":true}`))
	r.Header.Set("Authorization", env.bearerFor(t, adminUser()))
	env.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteModule(t *testing.T) {
	env := newCatalogTestEnv(t)

	env.modules.EXPECT().Delete(gomock.Any(), "m1").Return(true, nil)
	env.modules.EXPECT().Delete(gomock.Any(), "gone").Return(false, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/modules/m1", nil)
	r.Header.Set("Authorization", env.bearerFor(t, adminUser()))
	env.router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodDelete, "/api/modules/gone", nil)
	r.Header.Set("Authorization", env.bearerFor(t, adminUser()))
	env.router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
