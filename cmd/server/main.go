package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/solerao/campusmetro/internal/config"
	"github.com/solerao/campusmetro/internal/graph"
	"github.com/solerao/campusmetro/internal/lines"
	"github.com/solerao/campusmetro/internal/logging"
	"github.com/solerao/campusmetro/internal/mapstore"
	"github.com/solerao/campusmetro/internal/repository"
	"github.com/solerao/campusmetro/internal/server"
	"github.com/solerao/campusmetro/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, graphClient, err := buildMapSource(appCtx, cfg)
	if err != nil {
		logger.Error("failed to build map source", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	store := mapstore.NewStore(source, logger)
	loadCtx, cancel := context.WithTimeout(appCtx, 30*time.Second)
	err = store.Load(loadCtx)
	cancel()
	if err != nil {
		logger.Error("failed to load campus map", "error", err)
		os.Exit(1)
	}

	table, err := buildLineTable(cfg, logger)
	if err != nil {
		logger.Error("failed to load line table", "error", err)
		os.Exit(1)
	}

	if cfg.Map.Watch && cfg.Map.Source == config.MapSourceFile {
		watcher := mapstore.NewWatcher(store, cfg.Map.DataPath, logger)
		if err := watcher.Start(appCtx); err != nil {
			logger.Error("failed to start map watcher", "error", err)
			os.Exit(1)
		}
	}

	planner := service.NewRoutePlanner(store, table, service.PlannerOptions{
		CacheSize: cfg.Cache.RouteCacheSize,
		CacheTTL:  cfg.Cache.RouteCacheTTL,
	}, logger)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.MapHealthService{Store: store, Client: graphClient},
		API:              server.NewAPIHandlers(logger, planner, store, table),
		MetricsEnabled:   cfg.HTTP.MetricsEnabled,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-appCtx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildMapSource selects where the campus map comes from. The graph
// client is returned so main can close it and wire it into health
// probes; it is nil for the file source.
func buildMapSource(ctx context.Context, cfg config.Config) (mapstore.Source, graph.Client, error) {
	switch cfg.Map.Source {
	case config.MapSourceFile:
		return mapstore.FileSource{Path: cfg.Map.DataPath}, nil, nil
	case config.MapSourceGraphDB:
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, nil, err
		}
		return mapstore.GraphSource{Repo: repository.New(client)}, client, nil
	default:
		return nil, nil, fmt.Errorf("unsupported map source %q", cfg.Map.Source)
	}
}

func buildLineTable(cfg config.Config, logger *slog.Logger) (*lines.Table, error) {
	if cfg.Map.LinesPath == "" {
		logger.Info("no line table configured, every connection classifies as the default line")
		return lines.NewTable(nil)
	}
	return lines.LoadTable(cfg.Map.LinesPath)
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
