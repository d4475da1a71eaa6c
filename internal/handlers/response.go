package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/middleware"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Response is the envelope of every API reply.
type Response struct {
	Status  bool        `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Response{Status: true, Code: code, Message: message, Data: data})
}

// ErrorHandler is installed as echo's HTTPErrorHandler so that handler
// errors, framework errors and panics recovered by middleware all leave as
// an envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := http.StatusInternalServerError, apperrors.SomethingWentWrong

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = fmt.Sprint(he.Message)
		}
		if he.Internal != nil {
			err = he.Internal
		}
	} else {
		appErr := apperrors.From(err)
		code, message = appErr.HTTPCode(), appErr.Message
	}

	if code >= http.StatusInternalServerError {
		req := c.Request()
		logger.FromContext(req.Context()).Error("request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, Response{Status: false, Code: code, Message: message})
	}
	if err != nil {
		logger.FromContext(c.Request().Context()).Error("writing error response", "error", err)
	}
}

func currentUser(c echo.Context) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperrors.Unauthorized("User not authenticated")
	}
	return user, nil
}

// bind decodes the request into dst, reporting malformed input as a
// validation error.
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return apperrors.Validation("Invalid request payload")
	}
	return nil
}
