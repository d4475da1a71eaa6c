package handlers

import (
	"net/http"

	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const emailSent = "Email sent successfully"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterAuthRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/get-otp", h.GetOTP)
	g.POST("/verify-otp", h.VerifyOTP)
	g.POST("/login", h.Login)
}

// Register sends a signup OTP, or signs up directly with platform=google
func (h *AuthHandler) Register(c echo.Context) error {
	var req services.RegisterInput
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	if res != nil {
		return success(c, http.StatusOK, "Signup successful", res)
	}
	return success(c, http.StatusOK, emailSent, nil)
}

func (h *AuthHandler) GetOTP(c echo.Context) error {
	var req services.EmailInput
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.GetOTP(c.Request().Context(), req); err != nil {
		return err
	}
	return success(c, http.StatusOK, emailSent, nil)
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req services.VerifyOTPInput
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.auth.VerifyOTP(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "OTP verified successfully", res)
}

// Login handles password, Google and Firebase sign in
func (h *AuthHandler) Login(c echo.Context) error {
	var req services.LoginInput
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Login successful", res)
}
