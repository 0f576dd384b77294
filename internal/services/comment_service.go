package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/forumhub/backend/internal/apperrors"
	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/policy"
	"github.com/forumhub/backend/internal/token"
)

// CommentRepository is the interface that wraps comment table data access
type CommentRepository interface {
	// GetByPost retrieves all comments for a post, oldest first
	GetByPost(ctx context.Context, postID int) ([]models.Comment, error)
	// GetByID retrieves a single comment by ID
	GetByID(ctx context.Context, commentID int) (*models.Comment, error)
	// Create inserts a new comment
	Create(ctx context.Context, comment *models.Comment) error
	// Delete deletes a comment by ID
	Delete(ctx context.Context, commentID int) error
}

// CommentPostRepository is the slice of post data access the comment service needs
type CommentPostRepository interface {
	// Exists checks if a post with the given ID exists
	Exists(ctx context.Context, postID int) (bool, error)
}

// commentService implements comment business logic
type commentService struct {
	commentRepo CommentRepository
	postRepo    CommentPostRepository
	logger      *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo CommentRepository, postRepo CommentPostRepository, logger *zap.Logger) *commentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

// ListByPost returns the comments of a post as an ordered reply forest
func (s *commentService) ListByPost(ctx context.Context, postID int) ([]*models.CommentNode, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("post %d: %w", postID, apperrors.ErrNotFound)
	}

	comments, err := s.commentRepo.GetByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return BuildCommentTree(comments), nil
}

// Create adds a comment to a post, authored by the actor. A reply's parent
// must be an existing comment on the same post.
func (s *commentService) Create(ctx context.Context, actor token.Identity, postID int, req *models.CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("content is required: %w", apperrors.ErrValidation)
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("post %d: %w", postID, apperrors.ErrNotFound)
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("parent comment does not exist: %w", apperrors.ErrValidation)
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("parent comment belongs to another post: %w", apperrors.ErrValidation)
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   actor.ID,
		ParentID: req.ParentID,
		Content:  content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created", zap.Int("comment_id", comment.ID), zap.Int("post_id", postID), zap.Int("author_id", actor.ID))
	return comment, nil
}

// Delete deletes a comment if the actor is its author or an administrator.
// A missing comment resolves to NotFound before any policy check.
func (s *commentService) Delete(ctx context.Context, actor token.Identity, commentID int) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if d := policy.CanDeleteComment(actor, comment.UserID); !d.Allowed() {
		return fmt.Errorf("%s: %w", d.Reason, apperrors.ErrForbidden)
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.logger.Info("comment deleted", zap.Int("comment_id", commentID), zap.Int("actor_id", actor.ID))
	return nil
}
