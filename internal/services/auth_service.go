package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/forumhub/backend/internal/apperrors"
	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/token"
)

// AuthUserRepository is the interface that wraps user table data access
// needed by the auth service
type AuthUserRepository interface {
	// Create inserts a new user into the database
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// ExistsByEmail checks if a user with such email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByUsername checks if a user with such username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// UpdateProfile updates the self-editable fields of a user
	UpdateProfile(ctx context.Context, userID int, username, fullName, bio string) error
	// UpdatePasswordHash updates the password hash for a user
	UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error
	// Count returns the number of registered users
	Count(ctx context.Context) (int, error)
}

// ResetTokenRepository is the interface that wraps password reset ticket data access
type ResetTokenRepository interface {
	// InvalidateByUser marks all unused tickets for a user as used
	InvalidateByUser(ctx context.Context, userID int) error
	// Create inserts a new reset ticket
	Create(ctx context.Context, t *models.PasswordResetToken) error
	// GetByHash retrieves a reset ticket by its secret's digest
	GetByHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	// MarkUsed marks a ticket as consumed
	MarkUsed(ctx context.Context, tokenID int) error
}

// Mailer sends outbound mail. Failures propagate to the caller; there is no retry.
type Mailer interface {
	Send(to, subject, body string) error
}

// authService implements registration, login, profile and password reset
type authService struct {
	userRepo     AuthUserRepository
	resetRepo    ResetTokenRepository
	generator    *token.Generator
	mailer       Mailer
	logger       *zap.Logger
	ticketExpiry time.Duration
	frontendURL  string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo AuthUserRepository,
	resetRepo ResetTokenRepository,
	generator *token.Generator,
	mailer Mailer,
	logger *zap.Logger,
	ticketExpiry time.Duration,
	frontendURL string,
) *authService {
	return &authService{
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		generator:    generator,
		mailer:       mailer,
		logger:       logger,
		ticketExpiry: ticketExpiry,
		frontendURL:  frontendURL,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 6

// Register creates a new account. The role is always RoleNormal; clients
// cannot influence it.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	normalizedUsername := strings.TrimSpace(req.Username)
	fullName := strings.TrimSpace(req.FullName)

	if normalizedUsername == "" || normalizedEmail == "" || req.Password == "" || fullName == "" {
		return nil, fmt.Errorf("username, email, password and full name are required: %w", apperrors.ErrValidation)
	}
	if !emailRegex.MatchString(normalizedEmail) {
		return nil, fmt.Errorf("invalid email format: %w", apperrors.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long: %w", minPasswordLength, apperrors.ErrValidation)
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("invalid birth date, expected YYYY-MM-DD: %w", apperrors.ErrValidation)
		}
		birthDate = &parsed
	}

	// Uniqueness checks run before the insert so a duplicate never creates a row
	emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrConflict)
	}

	usernameExists, err := s.userRepo.ExistsByUsername(ctx, normalizedUsername)
	if err != nil {
		return nil, err
	}
	if usernameExists {
		return nil, fmt.Errorf("username already registered: %w", apperrors.ErrConflict)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     normalizedUsername,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Bio:          strings.TrimSpace(req.Bio),
		BirthDate:    birthDate,
		Role:         models.RoleNormal,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates by email and password and returns a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return "", fmt.Errorf("email and password are required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthenticated)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthenticated)
	}

	signed, err := s.generator.Issue(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return signed, nil
}

// Refresh re-issues a token for an actor whose current token is still valid
func (s *authService) Refresh(identity token.Identity) (string, error) {
	signed, err := s.generator.IssueIdentity(identity)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return signed, nil
}

// GetProfile returns the full account of the actor
func (s *authService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a self-service edit to the actor's own account.
// Only username, full name and bio are editable here; nil fields keep their
// current value.
func (s *authService) UpdateProfile(ctx context.Context, actorID int, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	username := user.Username
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, fmt.Errorf("username cannot be empty: %w", apperrors.ErrValidation)
		}
		if username != user.Username {
			exists, err := s.userRepo.ExistsByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("username already registered: %w", apperrors.ErrConflict)
			}
		}
	}

	fullName := user.FullName
	if req.FullName != nil {
		fullName = strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, fmt.Errorf("full name cannot be empty: %w", apperrors.ErrValidation)
		}
	}

	bio := user.Bio
	if req.Bio != nil {
		bio = strings.TrimSpace(*req.Bio)
	}

	if err := s.userRepo.UpdateProfile(ctx, actorID, username, fullName, bio); err != nil {
		return nil, err
	}

	user.Username = username
	user.FullName = fullName
	user.Bio = bio
	return user, nil
}

// CountUsers returns the number of registered accounts
func (s *authService) CountUsers(ctx context.Context) (int, error) {
	return s.userRepo.Count(ctx)
}

// ForgotPassword issues a password reset ticket and mails the reset link.
// The response is uniform: an unknown email succeeds silently, so the
// endpoint never confirms whether an account exists. Issuing a new ticket
// invalidates all prior unused tickets for the account.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("email is required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	secret := make([]byte, 48)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate reset secret: %w", err)
	}
	rawToken := hex.EncodeToString(secret)
	digest := sha256.Sum256([]byte(rawToken))

	if err := s.resetRepo.InvalidateByUser(ctx, user.ID); err != nil {
		return err
	}

	ticket := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(digest[:]),
		ExpiresAt: time.Now().Add(s.ticketExpiry),
	}
	if err := s.resetRepo.Create(ctx, ticket); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/password-reset?token=%s", s.frontendURL, rawToken)
	body := fmt.Sprintf(
		"<p>A password reset was requested for your account.</p>"+
			"<p>This link is valid for 1 hour:</p>"+
			"<p><a href=%q>Reset your password</a></p>"+
			"<p>If you did not request this, ignore this message.</p>",
		resetURL,
	)
	if err := s.mailer.Send(user.Email, "Password recovery", body); err != nil {
		s.logger.Error("failed to send reset mail", zap.Int("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset ticket and sets a new password.
// The ticket must exist, be unused and be unexpired; the password is only
// touched after all checks pass.
func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" || newPassword == "" {
		return fmt.Errorf("token and new password are required: %w", apperrors.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long: %w", minPasswordLength, apperrors.ErrValidation)
	}

	digest := sha256.Sum256([]byte(rawToken))
	ticket, err := s.resetRepo.GetByHash(ctx, hex.EncodeToString(digest[:]))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("invalid reset token: %w", apperrors.ErrValidation)
		}
		return err
	}

	if ticket.Used {
		return fmt.Errorf("reset token already used: %w", apperrors.ErrValidation)
	}
	if time.Now().After(ticket.ExpiresAt) {
		return fmt.Errorf("reset token expired: %w", apperrors.ErrValidation)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, ticket.UserID, string(passwordHash)); err != nil {
		return err
	}

	return s.resetRepo.MarkUsed(ctx, ticket.ID)
}
