package handlers

import (
	"errors"
	"net/http"

	"github.com/adnan-k/sociograph/backend/internal/engine"
	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// getUserIDFromContext extracts the authenticated user ID set by the JWT middleware.
func getUserIDFromContext(c echo.Context) (uint, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid authentication")
	}
	return claims.UserID, nil
}

// engineHTTPError maps engine sentinel errors to HTTP status codes.
func engineHTTPError(err error) error {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	case errors.Is(err, engine.ErrContentDeleted):
		return echo.NewHTTPError(http.StatusGone, "Content has been deleted")
	case errors.Is(err, engine.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, "You do not own this resource")
	case errors.Is(err, engine.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Operation conflicts with current state")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// recordHTTPError maps raw repository lookup errors to HTTP status codes.
func recordHTTPError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
