package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/subosito/gotenv"

	"github.com/hqv-labs/dailybrief/internal/config"
	"github.com/hqv-labs/dailybrief/internal/feeds"
	"github.com/hqv-labs/dailybrief/internal/logging"
	"github.com/hqv-labs/dailybrief/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	_ = gotenv.Load()
	logging.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.OpenDatabase(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	store := storage.NewStore(db)

	var sources []feeds.Source
	for _, cat := range cfg.Feeds.ArxivCategories {
		sources = append(sources, feeds.ArxivSource(cat, cfg.Feeds.MaxPerFeed))
	}
	for _, src := range cfg.Feeds.Sources {
		sources = append(sources, feeds.Source{
			Name:           src.Name,
			URL:            src.URL,
			MaxItems:       cfg.Feeds.MaxPerFeed,
			ExtractContent: src.ExtractContent,
		})
	}

	ctx := context.Background()
	fetcher := feeds.NewFetcher()

	result, err := fetcher.CollectAll(ctx, sources)
	if err != nil {
		slog.Error("collection failed", "error", err)
		os.Exit(1)
	}

	saved := 0
	for i := range result.Articles {
		if err := store.UpsertArticle(ctx, &result.Articles[i]); err != nil {
			slog.Warn("failed to save article",
				"article_id", result.Articles[i].ID, "error", err)
			continue
		}
		saved++
	}

	slog.Info("collection complete",
		"collected", len(result.Articles),
		"saved", saved,
		"failed_sources", len(result.Failed),
	)
}
