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

// PostService is the interface that wraps post business logic
type PostService interface {
	// List returns all posts, newest first
	List(ctx context.Context) ([]models.Post, error)
	// ListByCategory returns all posts in a category, newest first
	ListByCategory(ctx context.Context, categoryID int) ([]models.Post, error)
	// Detail returns a post with its author's public fields
	Detail(ctx context.Context, postID int) (*models.PostDetail, error)
	// Create creates a post authored by the actor
	Create(ctx context.Context, actor token.Identity, req *models.CreatePostRequest) (*models.Post, error)
	// Delete deletes a post (author or administrator)
	Delete(ctx context.Context, actor token.Identity, postID int) error
}

// CommentService is the interface that wraps comment business logic
type CommentService interface {
	// ListByPost returns the comments of a post as an ordered reply forest
	ListByPost(ctx context.Context, postID int) ([]*models.CommentNode, error)
	// Create adds a comment to a post, authored by the actor
	Create(ctx context.Context, actor token.Identity, postID int, req *models.CreateCommentRequest) (*models.Comment, error)
	// Delete deletes a comment (author or administrator)
	Delete(ctx context.Context, actor token.Identity, commentID int) error
}

// PostHandler handles post and comment HTTP requests
type PostHandler struct {
	BaseHandler
	postService    PostService
	commentService CommentService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService PostService, commentService CommentService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		postService:    postService,
		commentService: commentService,
	}
}

// RegisterRoutes registers all post and comment handler routes
func (h *PostHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/posts", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Get("/category/{id}", h.ListByCategory)
		r.Get("/{id}", h.Detail)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/comments", h.ListComments)
		r.Post("/{id}/comments", h.CreateComment)
	})
	r.Route("/comments", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Delete("/{id}", h.DeleteComment)
	})
}

// List handles GET /posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Post
// @Router /posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		h.Logger.Error("failed to list posts", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, posts)
}

// ListByCategory handles GET /posts/category/{id}
// @Summary List posts in a category
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Success 200 {array} models.Post
// @Router /posts/category/{id} [get]
func (h *PostHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	posts, err := h.postService.ListByCategory(r.Context(), categoryID)
	if err != nil {
		h.Logger.Error("failed to list posts by category", zap.Error(err), zap.Int("category_id", categoryID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, posts)
}

// Detail handles GET /posts/{id}
// @Summary Get a post with author details
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]models.PostDetail
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id} [get]
func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	postID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	detail, err := h.postService.Detail(r.Context(), postID)
	if err != nil {
		h.Logger.Warn("failed to get post detail", zap.Error(err), zap.Int("post_id", postID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]*models.PostDetail{"post": detail})
}

// Create handles POST /posts
// @Summary Create a post
// @Description The author is taken from the verified token, never from the body.
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreatePostRequest true "Post fields"
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string "Missing required fields"
// @Router /posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), identity, &req)
	if err != nil {
		h.Logger.Warn("failed to create post", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, post)
}

// Delete handles DELETE /posts/{id}
// @Summary Delete a post
// @Description Allowed for the post's author and for administrators.
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string "Post deleted"
// @Failure 403 {object} map[string]string "Not the author nor an administrator"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), identity, postID); err != nil {
		h.Logger.Warn("failed to delete post", zap.Error(err), zap.Int("post_id", postID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// ListComments handles GET /posts/{id}/comments
// @Summary List the comments of a post as a reply tree
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {array} models.CommentNode
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id}/comments [get]
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	tree, err := h.commentService.ListByPost(r.Context(), postID)
	if err != nil {
		h.Logger.Warn("failed to list comments", zap.Error(err), zap.Int("post_id", postID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tree)
}

// CreateComment handles POST /posts/{id}/comments
// @Summary Comment on a post
// @Description The author is taken from the verified token. A reply's parent must belong to the same post.
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param request body models.CreateCommentRequest true "Comment fields"
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string "Missing content or bad parent"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id}/comments [post]
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), identity, postID, &req)
	if err != nil {
		h.Logger.Warn("failed to create comment", zap.Error(err), zap.Int("post_id", postID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, comment)
}

// DeleteComment handles DELETE /comments/{id}
// @Summary Delete a comment
// @Description Allowed for the comment's author and for administrators.
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string "Comment deleted"
// @Failure 403 {object} map[string]string "Not the author nor an administrator"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /comments/{id} [delete]
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	commentID, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), identity, commentID); err != nil {
		h.Logger.Warn("failed to delete comment", zap.Error(err), zap.Int("comment_id", commentID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
