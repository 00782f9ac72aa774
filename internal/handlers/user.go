package handlers

import (
	"errors"
	"net/http"

	"github.com/adnan-k/sociograph/backend/internal/engine"
	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	engine         *engine.Engine
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, eng *engine.Engine) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		engine:         eng,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PATCH("/me", h.UpdateMe)
	g.DELETE("/me", h.DeactivateMe)
	g.POST("/me/reactivate", h.ReactivateMe)
	g.GET("/search", h.SearchUsers)
	g.GET("/:username", h.GetUserByUsername)
}

// GetMe returns the authenticated user's own profile
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return recordHTTPError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// GetUserByUsername returns a user's public profile
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	username := c.Param("username")

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		return recordHTTPError(err)
	}
	if user.IsDeleted {
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateMe applies a partial update to the authenticated user's profile
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	upd := repositories.UserUpdate{}
	if req.Username != "" {
		upd.Username = &req.Username
	}
	if req.Email != "" {
		upd.Email = &req.Email
	}
	if req.Bio != "" {
		upd.Bio = &req.Bio
	}

	if err := h.userRepository.UpdateUserFields(userID, upd); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Username or email already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return recordHTTPError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// DeactivateMe soft-deletes the authenticated user's account
func (h *UserHandler) DeactivateMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.engine.DeactivateUser(userID); err != nil {
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Account deactivated"})
}

// ReactivateMe restores a previously deactivated account
func (h *UserHandler) ReactivateMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.engine.ReactivateUser(userID); err != nil {
		return engineHTTPError(err)
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return recordHTTPError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// SearchUsers performs a prefix search over usernames
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter 'q' is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, users)
}
