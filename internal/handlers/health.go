package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// Pinger is a dependency whose reachability is reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports the reachability of the databases.
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	results := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
		results = append(results, "")
	}

	var g errgroup.Group
	for i, name := range names {
		pinger := h.checks[name]
		g.Go(func() error {
			if err := pinger.Ping(ctx); err != nil {
				results[i] = "down"
				return err
			}
			results[i] = "up"
			return nil
		})
	}
	err := g.Wait()

	components := make(map[string]string, len(names))
	for i, name := range names {
		components[name] = results[i]
	}

	data := echo.Map{"service": "introhub-api", "components": components}
	if err != nil {
		data["status"] = "degraded"
		return c.JSON(http.StatusServiceUnavailable, Response{
			Status: false, Code: http.StatusServiceUnavailable, Message: "Service degraded", Data: data,
		})
	}
	data["status"] = "healthy"
	return success(c, http.StatusOK, "Service healthy", data)
}
