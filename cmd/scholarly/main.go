// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/poiesic/scholarly/ai"
	"github.com/poiesic/scholarly/ai/openai"
	"github.com/poiesic/scholarly/corpus"
	"github.com/poiesic/scholarly/graphsource"
	"github.com/poiesic/scholarly/ingestion"
	"github.com/poiesic/scholarly/search"
	"github.com/poiesic/scholarly/server"
	"github.com/poiesic/scholarly/storage/badger"
	"github.com/poiesic/scholarly/textproc"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "scholarly",
		Usage: "Hybrid search and recommendation service for academic papers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Sync the corpus and serve the search API",
				Action: serveCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:    "listen",
						Aliases: []string{"a"},
						Usage:   "HTTP listen address",
						Value:   ":8080",
					},
					&cli.BoolFlag{
						Name:  "skip-sync",
						Usage: "Serve the persisted corpus without syncing at startup",
					},
				),
			},
			{
				Name:   "sync",
				Usage:  "Sync the corpus from the graph store and exit",
				Action: syncCommand,
				Flags:  commonFlags(),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate every paper embedding and exit",
				Action: reembedCommand,
				Flags:  commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "graph-url",
			Usage: "Graph store connection URL",
			Value: "falkor://localhost:6379",
		},
		&cli.StringFlag{
			Name:  "graph-name",
			Usage: "Name of the paper graph",
			Value: "papers",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:     "embedding-model",
			Usage:    "Embedding model name",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Worker pool size for concurrent embedding (0 = auto)",
		},
	}
}

// services bundles the wired application components.
type services struct {
	snapshots interface{ Close() error }
	corpus    *corpus.Store
	syncer    *ingestion.Syncer
	engine    *search.Engine
}

func (s *services) close() {
	if s.syncer != nil {
		s.syncer.Release()
	}
	if s.snapshots != nil {
		s.snapshots.Close()
	}
}

// buildServices wires the snapshot store, corpus, graph source, embedder,
// syncer and engine from CLI flags, and loads the persisted corpus.
func buildServices(ctx context.Context, c *cli.Context) (*services, error) {
	snapshots, err := badger.NewSnapshotStore(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := corpus.NewStore(snapshots)
	if err != nil {
		snapshots.Close()
		return nil, err
	}
	if err := store.Load(ctx); err != nil {
		snapshots.Close()
		return nil, fmt.Errorf("failed to load corpus snapshot: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		snapshots.Close()
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		snapshots.Close()
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	source, err := graphsource.NewFalkorSource(c.String("graph-url"), c.String("graph-name"))
	if err != nil {
		snapshots.Close()
		return nil, fmt.Errorf("failed to connect to graph store: %w", err)
	}

	var syncerOpts []ingestion.Option
	if poolSize := c.Int("pool-size"); poolSize > 0 {
		syncerOpts = append(syncerOpts, ingestion.WithPoolSize(poolSize))
	}
	syncer, err := ingestion.NewSyncer(source, store, embedder, syncerOpts...)
	if err != nil {
		snapshots.Close()
		return nil, err
	}

	engine, err := search.NewEngine(store, textproc.NewNormalizer(), embedder)
	if err != nil {
		syncer.Release()
		snapshots.Close()
		return nil, err
	}

	return &services{
		snapshots: snapshots,
		corpus:    store,
		syncer:    syncer,
		engine:    engine,
	}, nil
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	svc, err := buildServices(ctx, c)
	if err != nil {
		return err
	}
	defer svc.close()

	if !c.Bool("skip-sync") {
		report, err := svc.syncer.Sync(ctx)
		if err != nil {
			slog.Error("startup sync failed, serving the persisted corpus", "err", err)
		} else {
			slog.Info("startup sync complete", "fetched", report.Fetched, "added", report.Added)
		}
	}

	srv, err := server.NewServer(svc.engine, svc.syncer, svc.corpus)
	if err != nil {
		return err
	}

	addr := c.String("listen")
	slog.Info("serving search API", "addr", addr, "papers", svc.corpus.Len())
	return http.ListenAndServe(addr, srv.Handler())
}

func syncCommand(c *cli.Context) error {
	ctx := context.Background()

	svc, err := buildServices(ctx, c)
	if err != nil {
		return err
	}
	defer svc.close()

	report, err := svc.syncer.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Fetched:  %d\n", report.Fetched)
	fmt.Fprintf(os.Stderr, "Invalid:  %d\n", report.Invalid)
	fmt.Fprintf(os.Stderr, "Known:    %d\n", report.Known)
	fmt.Fprintf(os.Stderr, "Failed:   %d\n", report.Failed)
	fmt.Fprintf(os.Stderr, "Added:    %d\n", report.Added)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	svc, err := buildServices(ctx, c)
	if err != nil {
		return err
	}
	defer svc.close()

	if err := svc.syncer.Reembed(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Reembedded %d papers\n", svc.corpus.Len())
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
