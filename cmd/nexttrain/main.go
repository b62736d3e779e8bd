package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nexttrain/internal/config"
	"nexttrain/internal/feed"
	"nexttrain/internal/handler"
	"nexttrain/internal/metrics"
	"nexttrain/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// CLI flags override the environment
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.FeedURL, "feed-url", cfg.FeedURL, "GTFS-RT trip updates feed URL")
	flag.StringVar(&cfg.ModesFile, "modes-file", cfg.ModesFile, "Path to modes.yml (empty = built-in modes)")
	flag.Parse()

	modes, err := config.LoadModes(cfg.ModesFile)
	if err != nil {
		logger.Error("failed to load modes", "file", cfg.ModesFile, "error", err)
		os.Exit(1)
	}
	logger.Info("modes configured", "modes", modes.Names())

	mets := metrics.NewCollector()

	client := feed.NewClient(cfg.FeedURL, cfg.FetchTimeout, logger)
	cache := feed.NewCache(client.Fetch, cfg.FeedTTL, cfg.FetchTimeout, mets, logger)

	h := handler.New(cache, modes, mets, logger)
	srv := server.New(cfg, h, mets, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		os.Exit(0)
	}()

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
