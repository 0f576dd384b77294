package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/forumhub/backend/internal/apperrors"
	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/token"
)

// mockCategoryRepository is a mock implementation of CategoryRepository
type mockCategoryRepository struct {
	categories []models.Category
	exists     bool
	getErr     error
	createErr  error
	deleteErr  error

	deletedID int
}

func (m *mockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.categories, nil
}

func (m *mockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists, nil
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	category.ID = 3
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, categoryID int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = categoryID
	return nil
}

func TestCategoryService_List(t *testing.T) {
	repo := &mockCategoryRepository{categories: []models.Category{{ID: 1, Name: "General"}}}
	svc := NewCategoryService(repo, zaptest.NewLogger(t))

	categories, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "General", categories[0].Name)
}

func TestCategoryService_Create(t *testing.T) {
	admin := token.Identity{ID: 2, Role: models.RoleAdmin}
	normal := token.Identity{ID: 3, Role: models.RoleNormal}

	tests := []struct {
		name          string
		actor         token.Identity
		req           *models.CreateCategoryRequest
		repo          *mockCategoryRepository
		expectedError error
	}{
		{
			name:  "admin creates a category",
			actor: admin,
			req:   &models.CreateCategoryRequest{Name: "Gaming"},
			repo:  &mockCategoryRepository{},
		},
		{
			name:          "normal user forbidden",
			actor:         normal,
			req:           &models.CreateCategoryRequest{Name: "Gaming"},
			repo:          &mockCategoryRepository{},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "empty name",
			actor:         admin,
			req:           &models.CreateCategoryRequest{Name: "  "},
			repo:          &mockCategoryRepository{},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "duplicate name",
			actor:         admin,
			req:           &models.CreateCategoryRequest{Name: "General"},
			repo:          &mockCategoryRepository{exists: true},
			expectedError: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCategoryService(tt.repo, zaptest.NewLogger(t))

			category, err := svc.Create(context.Background(), tt.actor, tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, category)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 3, category.ID)
			assert.Equal(t, "Gaming", category.Name)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		actor         token.Identity
		repo          *mockCategoryRepository
		expectedError error
	}{
		{
			name:  "admin deletes a category",
			actor: token.Identity{ID: 2, Role: models.RoleAdmin},
			repo:  &mockCategoryRepository{},
		},
		{
			name:          "normal user forbidden",
			actor:         token.Identity{ID: 3, Role: models.RoleNormal},
			repo:          &mockCategoryRepository{},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "category missing",
			actor:         token.Identity{ID: 2, Role: models.RoleAdmin},
			repo:          &mockCategoryRepository{deleteErr: fmt.Errorf("category 3: %w", apperrors.ErrNotFound)},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCategoryService(tt.repo, zaptest.NewLogger(t))

			err := svc.Delete(context.Background(), tt.actor, 3)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 3, tt.repo.deletedID)
		})
	}
}
