package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solerao/campusmetro/internal/config"
	"github.com/solerao/campusmetro/internal/domain"
	"github.com/solerao/campusmetro/internal/graph"
	"github.com/solerao/campusmetro/internal/logging"
	"github.com/solerao/campusmetro/internal/repository"
	"github.com/solerao/campusmetro/internal/service"
)

func main() {
	var (
		mapPath = flag.String("map", "data/campus.json", "Path to the campus map document")
		workers = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	doc, err := loadMapDocument(*mapPath)
	if err != nil {
		logger.Error("failed to load map document", "error", err, "path", *mapPath)
		os.Exit(1)
	}
	if len(doc.Stations) == 0 {
		logger.Error("map document has no stations", "path", *mapPath)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Graph.URI == "" {
		logger.Error("GRAPH_URI is required for ingestion")
		os.Exit(1)
	}
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	ingestor := service.NewBulkIngestor(repository.New(client), *workers)

	start := time.Now()
	logger.Info("ingesting campus map", "stations", len(doc.Stations), "workers", *workers)
	if err := ingestor.IngestMap(ctx, doc.Stations); err != nil {
		logger.Error("map ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete", "duration", time.Since(start).String(), "stations", len(doc.Stations))
}

func loadMapDocument(path string) (domain.MapDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.MapDocument{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var doc domain.MapDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return domain.MapDocument{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}
