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

// resetTokenRepository implements password reset ticket data access
type resetTokenRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewResetTokenRepository creates a new password reset token repository
func NewResetTokenRepository(db *sql.DB, logger *zap.Logger) *resetTokenRepository {
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

// InvalidateByUser marks all unused tickets for a user as used.
// Called before issuing a new ticket so only the latest one stays valid.
func (r *resetTokenRepository) InvalidateByUser(ctx context.Context, userID int) error {
	query := `UPDATE password_reset_tokens SET used = 1 WHERE user_id = ? AND used = 0`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		r.logger.Error("failed to invalidate reset tokens", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to invalidate reset tokens: %w", err)
	}

	return nil
}

// Create inserts a new reset ticket
func (r *resetTokenRepository) Create(ctx context.Context, t *models.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at, used)
		VALUES (?, ?, ?, 0)
	`

	result, err := r.db.ExecContext(ctx, query, t.UserID, t.TokenHash, t.ExpiresAt)
	if err != nil {
		r.logger.Error("failed to create reset token", zap.Error(err), zap.Int("user_id", t.UserID))
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	t.ID = int(id)
	return nil
}

// GetByHash retrieves a reset ticket by its secret's digest
func (r *resetTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token_hash = ?
	`

	t := &models.PasswordResetToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&t.ID,
		&t.UserID,
		&t.TokenHash,
		&t.ExpiresAt,
		&t.Used,
		&t.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reset token: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get reset token", zap.Error(err))
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return t, nil
}

// MarkUsed marks a ticket as consumed
func (r *resetTokenRepository) MarkUsed(ctx context.Context, tokenID int) error {
	query := `UPDATE password_reset_tokens SET used = 1 WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, tokenID); err != nil {
		r.logger.Error("failed to mark reset token used", zap.Error(err), zap.Int("token_id", tokenID))
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}

	return nil
}
