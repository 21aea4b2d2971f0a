package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readyCheckTimeout = 2 * time.Second

// ReadyCheck reports whether a dependency can serve requests
type ReadyCheck func(ctx context.Context) error

type HealthHandler struct {
	version string
	checks  map[string]ReadyCheck
}

func NewHealthHandler(version string, checks map[string]ReadyCheck) *HealthHandler {
	return &HealthHandler{
		version: version,
		checks:  checks,
	}
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if len(h.checks) == 0 {
		return c.JSON(HealthResponse{Status: "ready"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), readyCheckTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			ready = false
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: "not_ready",
			Checks: results,
		})
	}

	return c.JSON(HealthResponse{
		Status: "ready",
		Checks: results,
	})
}
