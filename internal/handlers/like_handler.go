package handlers

import (
	"net/http"

	"github.com/adnan-k/sociograph/backend/internal/engine"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like toggle HTTP requests
type LikeHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	engine            *engine.Engine
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, eng *engine.Engine) *LikeHandler {
	return &LikeHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		engine:            eng,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:publicID/like", h.TogglePostLike)
	g.POST("/comments/:publicID/like", h.ToggleCommentLike)
}

// TogglePostLike flips the authenticated user's like on a post
func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}

	liked, likeCount, err := h.engine.ToggleLike(userID, engine.PostRef(post.ID))
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"liked":      liked,
		"like_count": likeCount,
	})
}

// ToggleCommentLike flips the authenticated user's like on a comment
func (h *LikeHandler) ToggleCommentLike(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByPublicID(c.Param("publicID"))
	if err != nil {
		return recordHTTPError(err)
	}

	liked, likeCount, err := h.engine.ToggleLike(userID, engine.CommentRef(comment.ID))
	if err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"liked":      liked,
		"like_count": likeCount,
	})
}
