package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/wayfinder/internal/adapters/http"
	natsadapter "github.com/samirrijal/wayfinder/internal/adapters/nats"
	"github.com/samirrijal/wayfinder/internal/adapters/valkey"
	"github.com/samirrijal/wayfinder/internal/app"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/config"
	"github.com/samirrijal/wayfinder/internal/pkg/logging"
	"github.com/samirrijal/wayfinder/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("wayfinder-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{
		MapTTL:   cfg.Map.TTL,
		DocsPath: http.DefaultDocsPath,
	}

	// Map store (optional: maps are returned inline without it)
	if cfg.Valkey.Addr != "" {
		store, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, maps will be returned inline", "error", err)
		} else {
			defer store.Close()
			deps.Maps = store
		}
	}

	// Route events (optional)
	var events ports.EventPublisher
	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, route events disabled", "error", err)
		} else {
			defer pub.Close()
			events = pub
			deps.NATS = pub
			deps.Events = pub.Conn()
		}
	}

	svc, err := app.NewDirectionsService(cfg, events)
	if err != nil {
		log.Fatalf("directions: %v", err)
	}
	deps.Directions = svc

	slog.Info("providers configured",
		"geocoder", cfg.Geocoder.Provider,
		"router", cfg.Router.Provider,
		"default_profile", cfg.Router.DefaultProfile,
	)

	// Fiber
	srv := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "Wayfinder API",
		ProxyHeader:  cfg.Server.ProxyHeader,
	})
	srv.Use(recover.New())
	srv.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(srv, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := srv.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
