package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pefman/pokedex-duel/internal/api"
	"github.com/pefman/pokedex-duel/internal/battlelog"
	"github.com/pefman/pokedex-duel/internal/config"
	"github.com/pefman/pokedex-duel/internal/dex"
	"github.com/pefman/pokedex-duel/internal/favorites"
	"github.com/pefman/pokedex-duel/internal/server"
	"github.com/pefman/pokedex-duel/internal/stats"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	lvl, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(api.Config{
		BaseURL:  cfg.UpstreamBase,
		Timeout:  cfg.UpstreamTimeout,
		CacheTTL: cfg.CacheTTL,
	})

	var favs favorites.Store = favorites.NewMemory()
	if cfg.FavoritesDB != "" {
		db, err := favorites.OpenSQLite(cfg.FavoritesDB)
		if err != nil {
			logger.Error("open favorites", "path", cfg.FavoritesDB, "error", err)
			os.Exit(1)
		}
		favs = db
	}
	defer favs.Close()

	battles, err := battlelog.New(cfg.BattleLogDir)
	if err != nil {
		logger.Error("battle log", "dir", cfg.BattleLogDir, "error", err)
		os.Exit(1)
	}

	index := dex.NewIndex()
	if cfg.PreloadCount > 0 {
		go func() {
			start := time.Now()
			n, err := index.Preload(ctx, client, cfg.PreloadCount, cfg.PreloadWorkers)
			if err != nil {
				logger.Warn("preload interrupted", "loaded", n, "error", err)
				return
			}
			logger.Info("dex preloaded", "loaded", n, "requested", cfg.PreloadCount, "dur", time.Since(start).Round(time.Millisecond))
		}()
	}

	srv := server.New(server.Deps{
		Upstream:       client,
		Index:          index,
		Favorites:      favs,
		Battles:        battles,
		Daily:          stats.NewDaily(),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("pokedex api listening", "addr", httpSrv.Addr, "upstream", cfg.UpstreamBase,
			"version", buildVersion, "built", buildTime)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
