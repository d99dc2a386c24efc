// Copyright 2026 Arcatext
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
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/arcatext/newsift"
	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/enrich"
	"github.com/arcatext/newsift/ingestion"
	"github.com/arcatext/newsift/search"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "newsift",
		Usage: "RSS news collection, deduplication, and hybrid search",
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
				Name:   "run",
				Usage:  "Collect feeds into a new batch and process it",
				Action: runCommand,
				Flags: append(databaseFlags(), append(aiFlags(),
					&cli.StringSliceFlag{
						Name:     "feed",
						Aliases:  []string{"f"},
						Usage:    "Feed URL to collect (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "criteria",
						Aliases: []string{"c"},
						Usage:   "Relevance criteria the articles are classified against",
					},
					&cli.Float64Flag{
						Name:  "similarity-threshold",
						Usage: "Text similarity at or above which articles are duplicates",
						Value: 0.85,
					},
					&cli.Float64Flag{
						Name:  "relevance-threshold",
						Usage: "Relevance score at or above which articles are relevant",
						Value: 0.6,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for LLM calls",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "cross-batch",
						Usage: "Deduplicate against earlier batches as well",
					})...),
			},
			{
				Name:      "search",
				Usage:     "Rank stored articles against a query",
				Action:    searchCommand,
				ArgsUsage: "QUERY",
				Flags: append(databaseFlags(), append(aiFlags(),
					&cli.Uint64Flag{
						Name:    "batch",
						Aliases: []string{"b"},
						Usage:   "Restrict to one batch (0 = whole store)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.Float64Flag{
						Name:  "base-threshold",
						Usage: "Ceiling for the adaptive semantic threshold",
						Value: search.DefaultBaseThreshold,
					})...),
			},
			{
				Name:   "embed",
				Usage:  "Backfill embeddings for articles without a vector",
				Action: embedCommand,
				Flags: append(databaseFlags(), append(aiFlags(),
					&cli.Uint64Flag{
						Name:    "batch",
						Aliases: []string{"b"},
						Usage:   "Restrict to one batch (0 = whole store)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of articles to embed in each batch",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N articles",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					})...),
			},
			{
				Name:   "batches",
				Usage:  "List recent batches with their stats",
				Action: batchesCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of batches to list (0 = all)",
						Value:   20,
					}),
			},
			{
				Name:   "stats",
				Usage:  "Print corpus totals",
				Action: statsCommand,
				Flags:  databaseFlags(),
			},
			{
				Name:   "purge",
				Usage:  "Delete a batch and all of its articles",
				Action: purgeCommand,
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "batch",
						Aliases:  []string{"b"},
						Usage:    "Batch to delete",
						Required: true,
					}),
			},
		},
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name for classification and summaries",
			Value: "qwen2.5:3b",
		},
	}
}

// openDatabase wires the store and AI provider from command flags.
func openDatabase(c *cli.Context) (*newsift.Database, error) {
	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	}
	if chatHost := c.String("chat-host"); chatHost != "" {
		opts = append(opts, ai.WithChatHost(chatHost))
	} else {
		opts = append(opts, ai.WithChatHost(c.String("embedding-host")))
	}

	aiConfig := ai.NewConfig(opts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := newsift.NewDatabase(c.String("db"), newsift.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []ingestion.Option{ingestion.WithPoolSize(c.Int("pool-size"))}
	if c.Bool("cross-batch") {
		opts = append(opts, ingestion.WithCrossBatchDedup())
	}
	opts = append(opts, ingestion.WithProgress(func(p ingestion.Progress) {
		fmt.Fprintf(os.Stderr, "\r%-10s %d/%d", p.Step, p.Done, p.Total)
	}))

	pipeline, err := db.NewPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	batch := &core.Batch{
		FeedURLs:            c.StringSlice("feed"),
		Criteria:            c.String("criteria"),
		SimilarityThreshold: c.Float64("similarity-threshold"),
		RelevanceThreshold:  c.Float64("relevance-threshold"),
	}

	batch, err = pipeline.Run(ctx, batch)
	if err != nil {
		return fmt.Errorf("processing run failed: %w", err)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Printf("Batch %d: %d collected, %d duplicates, %d unique, %d relevant\n",
		batch.Id, batch.Stats.Collected, batch.Stats.Duplicates,
		batch.Stats.Unique, batch.Stats.Relevant)

	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	config := search.DefaultRankConfig()
	config.BaseThreshold = float32(c.Float64("base-threshold"))

	results, err := db.Search(ctx, query, core.ID(c.Uint64("batch")), c.Int("limit"),
		search.WithConfig(config))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. [%.3f] %s\n    %s\n", i+1, r.Score, r.Article.Title, r.Article.Link)
		if r.Article.Summary != "" {
			fmt.Printf("    %s\n", r.Article.Summary)
		}
	}

	return nil
}

func embedCommand(c *cli.Context) error {
	ctx := context.Background()

	config := &enrich.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pass := db.NewEnrichmentPass(core.ID(c.Uint64("batch")), config, os.Stderr)

	if err := pass.Run(ctx); err != nil {
		return fmt.Errorf("embedding pass failed: %w", err)
	}

	return nil
}

func batchesCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabaseWithoutAI(c)
	if err != nil {
		return err
	}
	defer db.Close()

	batches, err := db.BatchRepository().ListBatches(ctx, c.Int("limit"))
	if err != nil {
		return err
	}

	if len(batches) == 0 {
		fmt.Println("No batches.")
		return nil
	}

	for _, b := range batches {
		fmt.Printf("%4d  %s  %-40q  %d collected, %d duplicates, %d relevant\n",
			b.Id, b.CreatedAt.Format(time.DateTime), b.Criteria,
			b.Stats.Collected, b.Stats.Duplicates, b.Stats.Relevant)
	}

	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabaseWithoutAI(c)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Batches:    %d\n", stats.Batches)
	fmt.Printf("Articles:   %d\n", stats.Articles)
	fmt.Printf("Duplicates: %d\n", stats.Duplicates)
	fmt.Printf("Relevant:   %d\n", stats.Relevant)
	fmt.Printf("Embedded:   %d\n", stats.Embedded)

	return nil
}

func purgeCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabaseWithoutAI(c)
	if err != nil {
		return err
	}
	defer db.Close()

	removed, err := db.PurgeBatch(ctx, core.ID(c.Uint64("batch")))
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	fmt.Printf("Removed batch %d (%d articles)\n", c.Uint64("batch"), removed)
	return nil
}

// openDatabaseWithoutAI opens the store for commands that never call the
// provider, so they work with no model endpoint configured.
func openDatabaseWithoutAI(c *cli.Context) (*newsift.Database, error) {
	db, err := newsift.NewDatabase(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
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
