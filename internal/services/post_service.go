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

// PostRepository is the interface that wraps post table data access
type PostRepository interface {
	// GetAll retrieves all posts, newest first
	GetAll(ctx context.Context) ([]models.Post, error)
	// GetByCategory retrieves all posts in a category, newest first
	GetByCategory(ctx context.Context, categoryID int) ([]models.Post, error)
	// GetByID retrieves a post with its author's public fields
	GetByID(ctx context.Context, postID int) (*models.PostDetail, error)
	// Exists checks if a post with the given ID exists
	Exists(ctx context.Context, postID int) (bool, error)
	// Create inserts a new post
	Create(ctx context.Context, post *models.Post) error
	// Delete deletes a post by ID
	Delete(ctx context.Context, postID int) error
}

// postService implements post business logic
type postService struct {
	postRepo PostRepository
	logger   *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(postRepo PostRepository, logger *zap.Logger) *postService {
	return &postService{
		postRepo: postRepo,
		logger:   logger,
	}
}

// List returns all posts, newest first
func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.GetAll(ctx)
}

// ListByCategory returns all posts in a category, newest first.
// An unknown category yields an empty list, not an error.
func (s *postService) ListByCategory(ctx context.Context, categoryID int) ([]models.Post, error) {
	return s.postRepo.GetByCategory(ctx, categoryID)
}

// Detail returns a post with its author's public fields
func (s *postService) Detail(ctx context.Context, postID int) (*models.PostDetail, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Create creates a post authored by the actor. The author id comes from the
// verified token only; a client-supplied author is never consulted.
func (s *postService) Create(ctx context.Context, actor token.Identity, req *models.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if req.CategoryID <= 0 || title == "" || content == "" {
		return nil, fmt.Errorf("category, title and content are required: %w", apperrors.ErrValidation)
	}

	post := &models.Post{
		CategoryID: req.CategoryID,
		UserID:     actor.ID,
		Title:      title,
		Content:    content,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", zap.Int("post_id", post.ID), zap.Int("author_id", actor.ID))
	return post, nil
}

// Delete deletes a post if the actor is its author or an administrator.
// A missing post resolves to NotFound before any policy check.
func (s *postService) Delete(ctx context.Context, actor token.Identity, postID int) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if d := policy.CanDeletePost(actor, post.UserID); !d.Allowed() {
		return fmt.Errorf("%s: %w", d.Reason, apperrors.ErrForbidden)
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info("post deleted", zap.Int("post_id", postID), zap.Int("actor_id", actor.ID))
	return nil
}
