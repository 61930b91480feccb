package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/linkwise/linkwise/internal/service"
)

// Metrics holds all Prometheus collectors for the linkwise backend.
var Metrics = struct {
	VotesTotal       *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.CounterFunc
	CacheMisses      prometheus.CounterFunc
	CacheEntries     prometheus.GaugeFunc
	InFlightKeys     prometheus.GaugeFunc
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool, engine *service.Engine) {
	Metrics.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkwise_votes_total",
			Help: "Total votes accepted, by canonical category.",
		},
		[]string{"category"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linkwise_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "linkwise_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// Cache counters live on the engine; expose them as functions instead of
	// having the service layer depend on Prometheus types.
	Metrics.CacheHits = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "linkwise_cache_hits_total",
			Help: "Total in-memory cache hits across the posts and stats caches.",
		},
		func() float64 { return float64(engine.CacheHits()) },
	)

	Metrics.CacheMisses = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "linkwise_cache_misses_total",
			Help: "Total in-memory cache misses across the posts and stats caches.",
		},
		func() float64 { return float64(engine.CacheMisses()) },
	)

	Metrics.CacheEntries = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "linkwise_cache_entries",
			Help: "Current number of cached entries across both caches.",
		},
		func() float64 {
			info := engine.CacheInfo()
			return float64(info.PostEntries + info.StatsEntries)
		},
	)

	Metrics.InFlightKeys = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "linkwise_dedup_in_flight_keys",
			Help: "Current number of deduplicated in-flight operations.",
		},
		func() float64 { return float64(engine.CacheInfo().InFlightKeys) },
	)

	prometheus.MustRegister(
		Metrics.VotesTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.CacheEntries,
		Metrics.InFlightKeys,
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "linkwise_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "linkwise_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		method := string([]byte(c.Method()))
		endpoint := string([]byte(c.Path()))

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.Context())
		return nil
	}
}
