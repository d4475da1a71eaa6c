package handlers

import (
	"net/http"

	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notification/send", h.Send)
	g.GET("/notification/list", h.List)
	g.PUT("/notification/update", h.Update)
}

// Send creates a notification from the current user
func (h *NotificationHandler) Send(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.AddNotificationInput
	if err := bind(c, &req); err != nil {
		return err
	}

	id, err := h.notifications.Add(c.Request().Context(), req, user)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Notification sent successfully", echo.Map{"notification_id": id})
}

// List returns the latest notifications with unread count
func (h *NotificationHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.ListNotificationsInput
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.notifications.List(c.Request().Context(), req, user)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Notification list fetched successfully", result)
}

// Update marks one notification, or all of them, as read
func (h *NotificationHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.UpdateNotificationsInput
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.notifications.Update(c.Request().Context(), req, user)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Notification updated successfully", echo.Map{"updated": updated})
}
