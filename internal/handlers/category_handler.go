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

// CategoryService is the interface that wraps category business logic
type CategoryService interface {
	// List returns all categories ordered by name
	List(ctx context.Context) ([]models.Category, error)
	// Create creates a category (administrators only)
	Create(ctx context.Context, actor token.Identity, req *models.CreateCategoryRequest) (*models.Category, error)
	// Delete deletes a category (administrators only)
	Delete(ctx context.Context, actor token.Identity, categoryID int) error
}

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	BaseHandler
	categoryService CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		categoryService: categoryService,
	}
}

// RegisterRoutes registers all category handler routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/categories", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]models.Category
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		h.Logger.Error("failed to list categories", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string][]models.Category{"categories": categories})
}

// Create handles POST /categories
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCategoryRequest true "Category name"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string "Name missing"
// @Failure 403 {object} map[string]string "Not an administrator"
// @Failure 409 {object} map[string]string "Name already exists"
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), identity, &req)
	if err != nil {
		h.Logger.Warn("failed to create category", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, category)
}

// Delete handles DELETE /categories/{id}
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string "Category deleted"
// @Failure 403 {object} map[string]string "Not an administrator"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	categoryID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(r.Context(), identity, categoryID); err != nil {
		h.Logger.Warn("failed to delete category", zap.Error(err), zap.Int("category_id", categoryID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
