package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/use-agent/pricescout/api"
	"github.com/use-agent/pricescout/cache"
	"github.com/use-agent/pricescout/competitor"
	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/resolver"
	"github.com/use-agent/pricescout/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("pricescout starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	// ── 3. Competitor registry ──────────────────────────────────────
	registry := competitor.NewRegistry()
	slog.Info("competitor registry loaded", "competitors", registry.Keys())

	// ── 4. Browser scraper (launched lazily on first resolution) ────
	sc := scraper.New(cfg.Browser, cfg.Scraper)
	defer sc.Close()

	// ── 5. Resolver + pacing + cache ────────────────────────────────
	pacer := resolver.NewPacer(cfg.Pacing.BaseDelay, cfg.Pacing.MaxJitter)
	rs := resolver.New(registry, sc, pacer, resolver.Config{
		Threshold:     cfg.Match.Threshold,
		QueryTokens:   cfg.Match.QueryTokens,
		MaxCandidates: cfg.Scraper.MaxCandidates,
	})
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	// ── 6. Router + CORS ────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(rs, sc, registry, cfg, cc, startTime)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-API-Key", "Authorization"},
	}).Handler(router)

	// ── 7. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: corsHandler,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("pricescout stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
