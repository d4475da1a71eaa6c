package handlers

import (
	"net/http"

	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to the signed in user
type UserHandler struct {
	auth *services.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(auth *services.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.POST("/update-info", h.UpdateInfo)
}

// GetProfile returns the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "User profile fetched successfully", user)
}

// UpdateInfo updates name, role, LinkedIn URL or password
func (h *UserHandler) UpdateInfo(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.UpdateInfoInput
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.UpdateInfo(c.Request().Context(), req, user); err != nil {
		return err
	}
	return success(c, http.StatusOK, "User details update successfully", nil)
}
