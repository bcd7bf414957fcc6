package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/subosito/gotenv"

	"github.com/hqv-labs/dailybrief/internal/ai"
	"github.com/hqv-labs/dailybrief/internal/config"
	"github.com/hqv-labs/dailybrief/internal/digest"
	"github.com/hqv-labs/dailybrief/internal/logging"
	"github.com/hqv-labs/dailybrief/internal/mail"
	"github.com/hqv-labs/dailybrief/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	sendEmail := flag.Bool("send", false, "email the report after assembling it")
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

	report, err := service.Run(context.Background(), time.Now().UTC())
	if err != nil {
		slog.Error("digest failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(report.RenderedText)

	if *sendEmail {
		mailer := mail.NewMailer(mail.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			From:     cfg.Email.From,
			Password: os.Getenv("EMAIL_PASSWORD"),
			To:       cfg.Email.To,
		})
		if err := mailer.SendReport(report); err != nil {
			slog.Error("failed to send report email", "error", err)
			os.Exit(1)
		}
		slog.Info("report emailed", "to", cfg.Email.To)
	}
}
