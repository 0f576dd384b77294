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

// AdminService is the interface that wraps account administration logic
type AdminService interface {
	// ListUsers returns all accounts (administrators only)
	ListUsers(ctx context.Context, actor token.Identity) ([]models.UserListItem, error)
	// DeleteUser deletes the target account under the deletion policy
	DeleteUser(ctx context.Context, actor token.Identity, targetID int) error
	// ChangeRole sets the target account's role under the role change policy
	ChangeRole(ctx context.Context, actor token.Identity, targetID int, newRole models.Role) error
}

// AdminHandler handles administration HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListUsers)
		r.Delete("/{id}", h.DeleteUser)
		r.Patch("/{id}/role", h.ChangeRole)
	})
}

// ListUsers handles GET /admin/users
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]models.UserListItem
// @Failure 403 {object} map[string]string "Not an administrator"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	users, err := h.adminService.ListUsers(r.Context(), identity)
	if err != nil {
		h.Logger.Warn("failed to list users", zap.Error(err), zap.Int("actor_id", identity.ID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string][]models.UserListItem{"users": users})
}

// DeleteUser handles DELETE /admin/users/{id}
// @Summary Delete an account
// @Description Administrators only. The general administrator and the actor's own account cannot be deleted.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "Account deleted"
// @Failure 403 {object} map[string]string "Denied by the deletion policy"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	targetID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), identity, targetID); err != nil {
		h.Logger.Warn("failed to delete user", zap.Error(err), zap.Int("target_id", targetID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// ChangeRole handles PATCH /admin/users/{id}/role
// @Summary Change an account's role
// @Description Administrators only. The general administrator's role is immutable, self-demotion is denied, and only the general administrator demotes other administrators.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param request body models.ChangeRoleRequest true "New role"
// @Success 200 {object} map[string]string "Role updated"
// @Failure 400 {object} map[string]string "Unknown role value"
// @Failure 403 {object} map[string]string "Denied by the role change policy"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	targetID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req models.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.ChangeRole(r.Context(), identity, targetID, req.Role); err != nil {
		h.Logger.Warn("failed to change role", zap.Error(err), zap.Int("target_id", targetID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}
