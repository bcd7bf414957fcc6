package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/subosito/gotenv"

	"github.com/hqv-labs/dailybrief/internal/ai"
	"github.com/hqv-labs/dailybrief/internal/api"
	"github.com/hqv-labs/dailybrief/internal/config"
	"github.com/hqv-labs/dailybrief/internal/digest"
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

	summarizer, err := ai.NewSummarizer(ai.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		ModelDir: cfg.AI.ModelDir,
	})
	if err != nil {
		slog.Error("failed to create summarizer", "error", err)
		os.Exit(1)
	}

	pipeline := digest.NewPipeline(summarizer, slog.Default())
	service := digest.NewService(store, pipeline, cfg.Report.BatchLimit, cfg.Report.OutputDir, slog.Default())

	router := api.NewRouter(store, service)

	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	slog.Info("starting server", "addr", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
