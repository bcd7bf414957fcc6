package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hqv-labs/dailybrief/internal/models"
	"github.com/hqv-labs/dailybrief/internal/storage"
)

// Service runs a full digest pass: load the unprocessed articles, pipe them
// through the pipeline, assemble and persist the report, and mark the
// consumed articles processed. The store owns the processed flag; the
// pipeline only reports which ids it consumed.
type Service struct {
	store      *storage.Store
	pipeline   *Pipeline
	batchLimit int
	outputDir  string
	logger     *slog.Logger
}

// NewService wires the store and pipeline. batchLimit caps how many
// articles one run consumes; outputDir is where the JSON artifact of each
// report is written (empty disables the artifact).
func NewService(store *storage.Store, pipeline *Pipeline, batchLimit int, outputDir string, logger *slog.Logger) *Service {
	if batchLimit <= 0 {
		batchLimit = 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:      store,
		pipeline:   pipeline,
		batchLimit: batchLimit,
		outputDir:  outputDir,
		logger:     logger,
	}
}

// Run executes one digest pass for the given date. The only fatal error is
// failing to read the input article set; everything downstream degrades to
// fallbacks and the report always exists.
func (s *Service) Run(ctx context.Context, date time.Time) (*models.Report, error) {
	articles, err := s.store.UnprocessedArticles(ctx, s.batchLimit)
	if err != nil {
		return nil, fmt.Errorf("loading unprocessed articles: %w", err)
	}

	s.logger.Info("running digest", "articles", len(articles), "date", date.Format("2006-01-02"))

	summaries := s.pipeline.ProcessAll(ctx, articles)
	report := Assemble(summaries, date)

	if err := s.store.SaveReport(ctx, &report); err != nil {
		s.logger.Error("failed to persist report", "error", err)
	}

	if s.outputDir != "" {
		if err := s.writeArtifact(&report); err != nil {
			s.logger.Error("failed to write report artifact", "error", err)
		}
	}

	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	if err := s.store.MarkProcessed(ctx, ids); err != nil {
		s.logger.Error("failed to mark articles processed", "error", err)
	}

	s.logger.Info("digest complete", "total", report.TotalCount)
	return &report, nil
}

// writeArtifact dumps the report as a dated JSON file, mirroring the
// summary_YYYY-MM-DD.json layout consumed by downstream tooling.
func (s *Service) writeArtifact(report *models.Report) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	name := fmt.Sprintf("summary_%s.json", report.Date.Format("2006-01-02"))
	path := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	s.logger.Info("wrote report artifact", "path", path)
	return nil
}
