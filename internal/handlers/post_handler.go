package handlers

import (
	"net/http"
	"strconv"

	"github.com/adnan-k/sociograph/backend/internal/engine"
	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	engine         *engine.Engine
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, eng *engine.Engine) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		engine:         eng,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("", h.CreatePost)
	g.GET("/:publicID", h.GetPost)
	g.PATCH("/:publicID", h.UpdatePost)
	g.DELETE("/:publicID", h.DeletePost)
	g.POST("/:publicID/recover", h.RecoverPost)
	g.GET("/user/:username", h.GetUserPosts)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.engine.CreatePost(userID, req.Body)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost returns a single post by its public handle
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}
	if post.IsDeleted {
		return echo.NewHTTPError(http.StatusGone, "Content has been deleted")
	}

	return c.JSON(http.StatusOK, post)
}

// GetUserPosts returns a user's posts, newest first, paginated
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return recordHTTPError(err)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := h.postRepository.GetPostsByUserID(user.ID, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"posts": posts,
		"page":  page,
		"limit": limit,
	})
}

// UpdatePost edits the body of a post owned by the authenticated user
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
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

	updated, err := h.engine.UpdatePost(userID, post.ID, req.Body)
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeletePost soft-deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}

	if err := h.engine.DeletePost(userID, post.ID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted"})
}

// RecoverPost restores a soft-deleted post owned by the authenticated user
func (h *PostHandler) RecoverPost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}

	if err := h.engine.RecoverPost(userID, post.ID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Post recovered"})
}
