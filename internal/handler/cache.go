package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/linkwise/linkwise/internal/service"
)

// CacheHandler exposes a diagnostic snapshot of the in-memory caches.
type CacheHandler struct {
	engine *service.Engine
}

func NewCacheHandler(engine *service.Engine) *CacheHandler {
	return &CacheHandler{engine: engine}
}

// Info handles GET /api/cache
func (h *CacheHandler) Info(c fiber.Ctx) error {
	return c.JSON(h.engine.CacheInfo())
}
