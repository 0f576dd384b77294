package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/forumhub/backend/internal/apperrors"
	"github.com/forumhub/backend/internal/models"
)

// postRepository implements post table data access
type postRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sql.DB, logger *zap.Logger) *postRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all posts, newest first
func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT id, category_id, user_id, title, content, created_at
		FROM posts
		ORDER BY created_at DESC
	`

	return r.queryPosts(ctx, query)
}

// GetByCategory retrieves all posts in a category, newest first
func (r *postRepository) GetByCategory(ctx context.Context, categoryID int) ([]models.Post, error) {
	query := `
		SELECT id, category_id, user_id, title, content, created_at
		FROM posts
		WHERE category_id = ?
		ORDER BY created_at DESC
	`

	return r.queryPosts(ctx, query, categoryID)
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list posts", zap.Error(err))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post rows: %w", err)
	}

	return posts, nil
}

// GetByID retrieves a post with its author's public fields
func (r *postRepository) GetByID(ctx context.Context, postID int) (*models.PostDetail, error) {
	query := `
		SELECT p.id, p.category_id, p.user_id, p.title, p.content, p.created_at, u.full_name, u.role
		FROM posts p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = ?
	`

	detail := &models.PostDetail{}
	err := r.db.QueryRowContext(ctx, query, postID).Scan(
		&detail.ID,
		&detail.CategoryID,
		&detail.UserID,
		&detail.Title,
		&detail.Content,
		&detail.CreatedAt,
		&detail.AuthorName,
		&detail.AuthorRole,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %d: %w", postID, apperrors.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get post", zap.Error(err), zap.Int("post_id", postID))
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return detail, nil
}

// Exists checks if a post with the given ID exists
func (r *postRepository) Exists(ctx context.Context, postID int) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM posts WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, postID).Scan(&exists); err != nil {
		r.logger.Error("failed to check post existence", zap.Error(err), zap.Int("post_id", postID))
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new post
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (category_id, user_id, title, content)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, post.CategoryID, post.UserID, post.Title, post.Content)
	if err != nil {
		r.logger.Error("failed to create post", zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	post.ID = int(id)
	return nil
}

// Delete deletes a post by ID
func (r *postRepository) Delete(ctx context.Context, postID int) error {
	query := `DELETE FROM posts WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		r.logger.Error("failed to delete post", zap.Error(err), zap.Int("post_id", postID))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("post %d: %w", postID, apperrors.ErrNotFound)
	}

	return nil
}
