package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const healthCheckTimeout = 3 * time.Second

type checkResult struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
// Redis is optional, so a missing or unreachable Redis degrades the report
// without failing the probe; only a down database makes us unready.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	db := h.checkDB(ctx)
	rd := h.checkRedis(ctx)

	status := "healthy"
	httpStatus := fiber.StatusOK
	if rd.Status == "down" {
		status = "degraded"
	}
	if db.Status == "down" {
		status = "unhealthy"
		httpStatus = fiber.StatusServiceUnavailable
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"database": db,
			"redis":    rd,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) checkResult {
	start := time.Now()
	err := h.pool.Ping(ctx)
	res := checkResult{Status: "up", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = "down"
		res.Error = "connection failed"
	}
	return res
}

func (h *HealthHandler) checkRedis(ctx context.Context) checkResult {
	if h.rdb == nil {
		return checkResult{Status: "disabled"}
	}
	start := time.Now()
	err := h.rdb.Ping(ctx).Err()
	res := checkResult{Status: "up", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = "down"
		res.Error = "connection failed"
	}
	return res
}
