package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// Compile-time interface check.
var _ Summarizer = (*LocalProvider)(nil)

const defaultLocalModel = "facebook/bart-large-cnn"

// LocalProvider runs a summarization model locally through hugot's ONNX
// runtime. Initialization is lazy: the model is downloaded and the session
// created on the first Available() or Summarize() call. If initialization
// fails (missing runtime, download failure), the provider is permanently
// unavailable for its lifetime; it does not retry per article.
type LocalProvider struct {
	model    string
	modelDir string

	initOnce sync.Once
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	initErr  error
}

// NewLocalProvider creates a LocalProvider for the named model (defaulting
// to facebook/bart-large-cnn), caching model files under modelDir.
func NewLocalProvider(model, modelDir string) *LocalProvider {
	if model == "" {
		model = defaultLocalModel
	}
	if modelDir == "" {
		modelDir = "./data/models"
	}
	return &LocalProvider{model: model, modelDir: modelDir}
}

// Available triggers lazy initialization on first call and reports whether
// the local pipeline is usable.
func (p *LocalProvider) Available() bool {
	p.initOnce.Do(p.setup)
	return p.initErr == nil
}

func (p *LocalProvider) setup() {
	slog.Info("loading local summarization model", "model", p.model)

	if err := os.MkdirAll(p.modelDir, 0o755); err != nil {
		p.initErr = fmt.Errorf("creating model directory: %w", err)
		return
	}

	modelPath := filepath.Join(p.modelDir, filepath.Base(p.model)+".onnx")
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("model not found locally, downloading", "model", p.model)
		downloaded, err := hugot.DownloadModel(p.model, p.modelDir, hugot.NewDownloadOptions())
		if err != nil {
			p.initErr = fmt.Errorf("downloading model %s: %w", p.model, err)
			slog.Warn("local summarizer unavailable", "error", p.initErr)
			return
		}
		modelPath = downloaded
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		p.initErr = fmt.Errorf("initializing hugot session: %w", err)
		slog.Warn("local summarizer unavailable", "error", p.initErr)
		return
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "summarizationPipeline",
	})
	if err != nil {
		session.Destroy()
		p.initErr = fmt.Errorf("initializing summarization pipeline: %w", err)
		slog.Warn("local summarizer unavailable", "error", p.initErr)
		return
	}

	p.session = session
	p.pipeline = pipeline
	slog.Info("local summarization model loaded", "path", modelPath)
}

// generatedSummary is the JSON document the summarization model emits.
type generatedSummary struct {
	SummaryText string `json:"summary_text"`
}

// Summarize runs the local pipeline on the text. The length band is advisory
// only: the exported model's generation parameters control output length.
func (p *LocalProvider) Summarize(ctx context.Context, text string, kind SummaryKind) (string, error) {
	if !p.Available() {
		return "", fmt.Errorf("local summarizer not available: %w", p.initErr)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	output, err := p.pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", fmt.Errorf("running summarization pipeline: %w", err)
	}

	raw := output.GetOutput()
	if len(raw) == 0 {
		return "", fmt.Errorf("summarization pipeline returned no output")
	}

	first, ok := raw[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected output type %T from summarization pipeline", raw[0])
	}

	var summary generatedSummary
	if err := json.Unmarshal([]byte(first), &summary); err != nil {
		return "", fmt.Errorf("decoding model output: %w", err)
	}
	if summary.SummaryText == "" {
		return "", fmt.Errorf("model produced an empty summary")
	}

	return enhance(summary.SummaryText, kind), nil
}

// Close releases the ONNX session. Safe to call on an uninitialized or
// failed provider.
func (p *LocalProvider) Close() error {
	if p.session != nil {
		return p.session.Destroy()
	}
	return nil
}
