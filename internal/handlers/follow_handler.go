package handlers

import (
	"net/http"

	"github.com/adnan-k/sociograph/backend/internal/engine"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-related HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	engine           *engine.Engine
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, eng *engine.Engine) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		engine:           eng,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/:username/follow", h.Follow)
	g.DELETE("/:username/follow", h.Unfollow)
	g.GET("/:username/followers", h.GetFollowers)
	g.GET("/:username/following", h.GetFollowing)
}

// Follow makes the authenticated user follow the target user
func (h *FollowHandler) Follow(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return recordHTTPError(err)
	}

	if err := h.engine.Follow(userID, target.ID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Followed"})
}

// Unfollow removes the authenticated user's follow edge to the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return recordHTTPError(err)
	}

	if err := h.engine.Unfollow(userID, target.ID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Unfollowed"})
}

// GetFollowers lists the users following the target user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return recordHTTPError(err)
	}

	followers, err := h.followRepository.GetFollowers(target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists the users the target user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return recordHTTPError(err)
	}

	following, err := h.followRepository.GetFollowing(target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, following)
}
