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

// commentRepository implements comment table data access
type commentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB, logger *zap.Logger) *commentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// GetByPost retrieves all comments for a post with their author names,
// oldest first. The tree builder relies on this ordering.
func (r *commentRepository) GetByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.parent_id, c.content, u.full_name, c.created_at
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC, c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		r.logger.Error("failed to list comments", zap.Error(err), zap.Int("post_id", postID))
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.ParentID, &c.Content, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}

	return comments, nil
}

// GetByID retrieves a single comment by ID
func (r *commentRepository) GetByID(ctx context.Context, commentID int) (*models.Comment, error) {
	query := `
		SELECT id, post_id, user_id, parent_id, content, created_at
		FROM comments
		WHERE id = ?
	`

	comment := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, commentID).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.ParentID,
		&comment.Content,
		&comment.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %d: %w", commentID, apperrors.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get comment", zap.Error(err), zap.Int("comment_id", commentID))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// Create inserts a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, parent_id, content)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, comment.PostID, comment.UserID, comment.ParentID, comment.Content)
	if err != nil {
		r.logger.Error("failed to create comment", zap.Error(err))
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	comment.ID = int(id)
	return nil
}

// Delete deletes a comment by ID
func (r *commentRepository) Delete(ctx context.Context, commentID int) error {
	query := `DELETE FROM comments WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		r.logger.Error("failed to delete comment", zap.Error(err), zap.Int("comment_id", commentID))
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("comment %d: %w", commentID, apperrors.ErrNotFound)
	}

	return nil
}
