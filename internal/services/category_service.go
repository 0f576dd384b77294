package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/forumhub/backend/internal/apperrors"
	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/policy"
	"github.com/forumhub/backend/internal/token"
)

// CategoryRepository is the interface that wraps category table data access
type CategoryRepository interface {
	// GetAll retrieves all categories ordered by name
	GetAll(ctx context.Context) ([]models.Category, error)
	// ExistsByName checks if a category with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Create inserts a new category
	Create(ctx context.Context, category *models.Category) error
	// Delete deletes a category by ID
	Delete(ctx context.Context, categoryID int) error
}

// categoryService implements category business logic
type categoryService struct {
	categoryRepo CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo CategoryRepository, logger *zap.Logger) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns all categories ordered by name
func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// Create creates a category. Administrators only; the name must be unique.
func (s *categoryService) Create(ctx context.Context, actor token.Identity, req *models.CreateCategoryRequest) (*models.Category, error) {
	if d := policy.CanManageCategories(actor); !d.Allowed() {
		return nil, fmt.Errorf("%s: %w", d.Reason, apperrors.ErrForbidden)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", apperrors.ErrValidation)
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("category name already exists: %w", apperrors.ErrConflict)
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.Int("category_id", category.ID), zap.Int("actor_id", actor.ID))
	return category, nil
}

// Delete deletes a category. Administrators only; a missing category
// resolves to NotFound.
func (s *categoryService) Delete(ctx context.Context, actor token.Identity, categoryID int) error {
	if d := policy.CanManageCategories(actor); !d.Allowed() {
		return fmt.Errorf("%s: %w", d.Reason, apperrors.ErrForbidden)
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return err
	}

	s.logger.Info("category deleted", zap.Int("category_id", categoryID), zap.Int("actor_id", actor.ID))
	return nil
}
