package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/forumhub/backend/internal/apperrors"
	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/policy"
	"github.com/forumhub/backend/internal/token"
)

// AdminUserRepository is the interface that wraps user table data access
// needed by the admin service
type AdminUserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// GetAll retrieves all users ordered by registration date
	GetAll(ctx context.Context) ([]models.UserListItem, error)
	// UpdateRole sets the role of a user
	UpdateRole(ctx context.Context, userID int, role models.Role) error
	// Delete deletes a user by ID
	Delete(ctx context.Context, userID int) error
}

// adminService implements account administration business logic
type adminService struct {
	userRepo AdminUserRepository
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo AdminUserRepository, logger *zap.Logger) *adminService {
	return &adminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns all accounts. Administrators only.
func (s *adminService) ListUsers(ctx context.Context, actor token.Identity) ([]models.UserListItem, error) {
	if d := policy.CanListUsers(actor); !d.Allowed() {
		return nil, fmt.Errorf("%s: %w", d.Reason, apperrors.ErrForbidden)
	}

	return s.userRepo.GetAll(ctx)
}

// DeleteUser deletes the target account under the account deletion policy:
// administrators only, never the general administrator, never the actor's
// own account. A missing target resolves to NotFound before the policy runs.
func (s *adminService) DeleteUser(ctx context.Context, actor token.Identity, targetID int) error {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if d := policy.CanDeleteUser(actor, target.ID); !d.Allowed() {
		return fmt.Errorf("%s: %w", d.Reason, apperrors.ErrForbidden)
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Int("target_id", targetID), zap.Int("actor_id", actor.ID))
	return nil
}

// ChangeRole sets the target account's role under the role change policy:
// administrators only, the general administrator's role is immutable, no
// self-demotion, and only the general administrator demotes other admins.
func (s *adminService) ChangeRole(ctx context.Context, actor token.Identity, targetID int, newRole models.Role) error {
	if newRole != models.RoleNormal && newRole != models.RoleAdmin {
		return fmt.Errorf("invalid role %d: %w", newRole, apperrors.ErrValidation)
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if d := policy.CanChangeRole(actor, target, newRole); !d.Allowed() {
		return fmt.Errorf("%s: %w", d.Reason, apperrors.ErrForbidden)
	}

	if target.Role == newRole {
		// Nothing to do
		return nil
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, newRole); err != nil {
		return err
	}

	s.logger.Info("role changed",
		zap.Int("target_id", targetID),
		zap.Int("actor_id", actor.ID),
		zap.Int("new_role", int(newRole)),
	)
	return nil
}
