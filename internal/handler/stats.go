package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/linkwise/linkwise/internal/middleware"
	"github.com/linkwise/linkwise/internal/service"
	"github.com/linkwise/linkwise/internal/store"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats?refresh=true
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	refresh := fiber.Query(c, "refresh", false)

	stats, err := h.svc.Get(c.Context(), refresh)
	if err != nil {
		// Serve the last known snapshot rather than fail an aggregate
		// read while the store is down.
		if errors.Is(err, store.ErrUnavailable) {
			if cached, ok := h.svc.Cached(); ok {
				return c.JSON(cached)
			}
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Statistics temporarily unavailable")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
