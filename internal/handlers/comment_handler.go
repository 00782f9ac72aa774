package handlers

import (
	"net/http"

	"github.com/adnan-k/sociograph/backend/internal/engine"
	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	engine            *engine.Engine
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, eng *engine.Engine) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		engine:            eng,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:publicID/comments", h.CreateComment)
	g.GET("/posts/:publicID/comments", h.GetComments)
	g.PATCH("/comments/:publicID", h.UpdateComment)
	g.DELETE("/comments/:publicID", h.DeleteComment)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}

	comment, err := h.engine.CreateComment(userID, post.ID, req.Body)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists the live comments of a post, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	post, err := h.postRepository.GetPostByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}
	if post.IsDeleted {
		return echo.NewHTTPError(http.StatusGone, "Content has been deleted")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}

// UpdateComment edits the body of a comment owned by the authenticated user
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentRepository.GetCommentByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}

	updated, err := h.engine.UpdateComment(userID, comment.ID, req.Body)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteComment soft-deletes a comment owned by the authenticated user
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}

	if err := h.engine.DeleteComment(userID, comment.ID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Comment deleted"})
}
