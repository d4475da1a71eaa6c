package handlers

import (
	"net/http"

	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// IntroductionHandler handles introduction-related HTTP requests
type IntroductionHandler struct {
	introductions *services.IntroductionService
}

func NewIntroductionHandler(introductions *services.IntroductionService) *IntroductionHandler {
	return &IntroductionHandler{introductions: introductions}
}

// RegisterIntroductionRoutes registers introduction routes
func (h *IntroductionHandler) RegisterIntroductionRoutes(g *echo.Group) {
	g.POST("/introduction/request", h.Request)
	g.GET("/introduction/list", h.List)
	g.GET("/introduction/search", h.Search)
	g.GET("/introduction/view/:introduction_id", h.View)
	g.PUT("/introduction/update", h.Update)
}

func (h *IntroductionHandler) Request(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.RequestIntroductionInput
	if err := bind(c, &req); err != nil {
		return err
	}

	id, err := h.introductions.Request(c.Request().Context(), req, user)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Introduction requested successfully", echo.Map{"introduction_id": id})
}

func (h *IntroductionHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.ListIntroductionsInput
	if err := bind(c, &req); err != nil {
		return err
	}

	list, err := h.introductions.List(c.Request().Context(), req, user)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Introduction list fetched successfully", list)
}

func (h *IntroductionHandler) Search(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.introductions.Search(c.Request().Context(), c.QueryParam("search_text"), user)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Introduction search results", result)
}

func (h *IntroductionHandler) View(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.introductions.View(c.Request().Context(), c.Param("introduction_id"), user)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Introduction details fetched successfully", view)
}

func (h *IntroductionHandler) Update(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req services.UpdateIntroductionInput
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.introductions.Update(c.Request().Context(), req); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Introduction updated successfully", nil)
}
