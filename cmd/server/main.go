package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/linkwise/linkwise/internal/config"
	"github.com/linkwise/linkwise/internal/db"
	"github.com/linkwise/linkwise/internal/handler"
	"github.com/linkwise/linkwise/internal/middleware"
	"github.com/linkwise/linkwise/internal/router"
	"github.com/linkwise/linkwise/internal/service"
	"github.com/linkwise/linkwise/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "linkwise")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	st := store.NewPostgres(pool)
	rdb := service.NewRedisClient(cfg.RedisURL)
	if rdb != nil {
		defer rdb.Close()
	}

	engine := service.NewEngine(st, rdb, service.Config{
		CacheTTL:      cfg.CacheTTL,
		CacheCapacity: cfg.CacheCapacity,
	})
	handler.InitMetrics(pool, engine)

	invalidation := service.NewInvalidationWorker(rdb, engine)
	go invalidation.Start(ctx)

	warmer := service.NewStatsWorker(engine.Stats, cfg.StatsWarmInterval)
	go warmer.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "linkwise API",
		ServerHeader: "linkwise",
	})

	router.Setup(app, &router.Handlers{
		Post:   handler.NewPostHandler(engine.Posts),
		Vote:   handler.NewVoteHandler(engine.Votes),
		Stats:  handler.NewStatsHandler(engine.Stats),
		Cache:  handler.NewCacheHandler(engine),
		Health: handler.NewHealthHandler(pool, rdb),
	}, cfg.CORSOrigins)

	go func() {
		log.Printf("linkwise backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	cancel()
}
