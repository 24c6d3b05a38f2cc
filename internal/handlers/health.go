package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	version string
	deps    map[string]Pinger
}

// NewHealthHandler reports on the named dependencies. Nil entries are
// reported as disabled.
func NewHealthHandler(version string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, deps: deps}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, dep := range h.deps {
		switch {
		case dep == nil:
			services[name] = "disabled"
		case dep.Ping(ctx) != nil:
			services[name] = "unreachable"
			status = "degraded"
		default:
			services[name] = "connected"
		}
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"version":  h.version,
		"services": services,
	})
}
