package service

import (
	"context"
	"testing"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/domain/model"
	"github.com/brightmath/campus-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCatalogListForVisibility(t *testing.T) {
	tests := []struct {
		name          string
		sess          *domainauth.Session
		publishedOnly bool
	}{
		{name: "no session", sess: nil, publishedOnly: true},
		{
			name:          "guest",
			sess:          &domainauth.Session{Token: "t", User: domainauth.UserRecord{ID: "g", Role: domainauth.RoleGuest}},
			publishedOnly: true,
		},
		{
			name:          "student",
			sess:          &domainauth.Session{Token: "t", User: domainauth.UserRecord{ID: "s", Role: domainauth.RoleStudent}},
			publishedOnly: true,
		},
		{
			name:          "teacher sees drafts",
			sess:          &domainauth.Session{Token: "t", User: domainauth.UserRecord{ID: "te", Role: domainauth.RoleTeacher}},
			publishedOnly: false,
		},
		{
			name:          "admin sees drafts",
			sess:          &domainauth.Session{Token: "t", User: domainauth.UserRecord{ID: "a", Role: domainauth.RoleAdmin}},
			publishedOnly: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockModuleRepository(ctrl)
			repo.EXPECT().List(gomock.Any(), tt.publishedOnly).Return([]model.Module{}, nil)

			svc := NewCatalogService(CatalogServiceOptions{Modules: repo})
			_, err := svc.ListFor(context.Background(), tt.sess)
			require.NoError(t, err)
		})
	}
}

func TestCatalogCRUDDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockModuleRepository(ctrl)
	svc := NewCatalogService(CatalogServiceOptions{Modules: repo})
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).Return(&model.Module{ID: "m1"}, nil)
	created, err := svc.Create(ctx, &model.CreateModuleRequest{Title: "Algebra", Slug: "algebra"})
	require.NoError(t, err)
	assert.Equal(t, "m1", created.ID)

	repo.EXPECT().GetBySlug(ctx, "algebra").Return(&model.Module{ID: "m1", Slug: "algebra"}, nil)
	bySlug, err := svc.GetBySlug(ctx, "algebra")
	require.NoError(t, err)
	assert.Equal(t, "m1", bySlug.ID)

	repo.EXPECT().Delete(ctx, "m1").Return(true, nil)
	ok, err := svc.Delete(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, ok)
}
