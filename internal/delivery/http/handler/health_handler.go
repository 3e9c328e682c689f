package handler

import (
	"context"
	"time"

	"careerlink/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type poolStats interface {
	Stats() (total, idle int32)
}

// HealthHandler reports the state of the process dependencies. The database
// is required; the cache is optional and only degrades the report.
type HealthHandler struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	checks := fiber.Map{"database": "ok", "cache": "ok"}
	status := fiber.StatusOK
	message := "Server is running"

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "unavailable"
			status = fiber.StatusServiceUnavailable
			message = "Database unavailable"
		}
	}
	if h.cache == nil {
		checks["cache"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "unavailable"
	}

	data := fiber.Map{
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if ps, ok := h.db.(poolStats); ok {
		total, idle := ps.Stats()
		data["dbConnections"] = fiber.Map{"total": total, "idle": idle}
	}
	return response.Success(c, status, message, data)
}
