package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/forumhub/backend/internal/middleware"
	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/token"
)

// AuthService is the interface that wraps authentication business logic
type AuthService interface {
	// Register creates a new account with role normal
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Login authenticates by email and password and returns a signed token
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	// Refresh re-issues a token for a still-valid identity
	Refresh(identity token.Identity) (string, error)
	// ForgotPassword issues a reset ticket and mails the reset link
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a reset ticket and sets a new password
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
	// CountUsers returns the number of registered accounts
	CountUsers(ctx context.Context) (int, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)
		r.With(authMiddleware).Post("/refresh", h.Refresh)
	})
	r.Get("/users/count", h.CountUsers)
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Description Register with username, email, password and full name. New accounts always get the normal role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]any "Account created"
// @Failure 400 {object} map[string]string "Missing or malformed fields"
// @Failure 409 {object} map[string]string "Username or email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to register user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered",
		"id":      user.ID,
	})
}

// Login handles POST /auth/login
// @Summary Login
// @Description Authenticate with email and password. Returns a signed bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]string "Signed token"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	signed, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to login user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"jwt": signed})
}

// Refresh handles POST /auth/refresh
// @Summary Renew token
// @Description Re-issues a token for the authenticated actor. The current token must still be valid.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "New signed token"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	signed, err := h.authService.Refresh(identity)
	if err != nil {
		h.Logger.Error("failed to refresh token", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"jwt": signed})
}

// ForgotPassword handles POST /auth/forgot-password
// @Summary Request a password reset
// @Description Sends a reset link by mail when the email is registered. The response is the same either way.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Email"
// @Success 200 {object} map[string]string "Reset link sent if the account exists"
// @Failure 400 {object} map[string]string "Email missing"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		h.Logger.Error("failed to process password reset request", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "recovery link sent"})
}

// ResetPassword handles POST /auth/reset-password
// @Summary Reset password
// @Description Consumes a reset ticket and sets a new password. The ticket must be unused and unexpired.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]string "Password updated"
// @Failure 400 {object} map[string]string "Invalid, used or expired token"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		h.Logger.Warn("failed to reset password", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// CountUsers handles GET /users/count
// @Summary Count registered users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]int "Total registered users"
// @Router /users/count [get]
func (h *AuthHandler) CountUsers(w http.ResponseWriter, r *http.Request) {
	total, err := h.authService.CountUsers(r.Context())
	if err != nil {
		h.Logger.Error("failed to count users", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"total": total})
}
