package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	AI       AIConfig       `toml:"ai"`
	Database DatabaseConfig `toml:"database"`
	Feeds    FeedsConfig    `toml:"feeds"`
	Email    EmailConfig    `toml:"email"`
	Server   ServerConfig   `toml:"server"`
	Report   ReportConfig   `toml:"report"`
}

// AIConfig holds abstractive summarizer settings.
type AIConfig struct {
	Provider string `toml:"provider"` // "local", "openai", or "none"
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	ModelDir string `toml:"model_dir"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// FeedsConfig holds article collection settings.
type FeedsConfig struct {
	ArxivCategories []string     `toml:"arxiv_categories"`
	MaxPerFeed      int          `toml:"max_per_feed"`
	Sources         []FeedSource `toml:"sources"`
}

// FeedSource is one additional RSS/Atom feed to collect alongside arXiv.
type FeedSource struct {
	Name           string `toml:"name"`
	URL            string `toml:"url"`
	ExtractContent bool   `toml:"extract_content"`
}

// EmailConfig holds SMTP delivery settings. The password comes from the
// EMAIL_PASSWORD environment variable, never the file.
type EmailConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	From string `toml:"from"`
	To   string `toml:"to"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// ReportConfig controls digest runs.
type ReportConfig struct {
	// BatchLimit caps how many unprocessed articles one digest run consumes.
	BatchLimit int `toml:"batch_limit"`

	// OutputDir is where dated report artifacts (summary_YYYY-MM-DD.json)
	// are written. Empty disables the artifact.
	OutputDir string `toml:"output_dir"`
}

const defaultConfigContent = `[ai]
provider = "none"                 # "local" (on-device model), "openai", or "none"
api_key = ""                      # OpenAI key (or set OPENAI_API_KEY env var)
model = ""                        # default: facebook/bart-large-cnn for local
model_dir = "./data/models"

[database]
path = "./data/articles.db"

[feeds]
arxiv_categories = ["cs.AI", "cs.LG", "cs.CL"]
max_per_feed = 5

[email]
host = "smtp.gmail.com"
port = 587
from = ""                         # sender address (EMAIL_USER env var works too)
to = ""                           # recipient address (TO_EMAIL env var works too)

[server]
port = 8080

[report]
batch_limit = 20
output_dir = "./data"
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("report", "batch_limit") {
		if cfg.Report.BatchLimit < 1 {
			return fmt.Errorf("invalid report.batch_limit %d: must be >= 1", cfg.Report.BatchLimit)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "none"
	}
	if cfg.AI.ModelDir == "" {
		cfg.AI.ModelDir = "./data/models"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/articles.db"
	}
	if len(cfg.Feeds.ArxivCategories) == 0 {
		cfg.Feeds.ArxivCategories = []string{"cs.AI", "cs.LG", "cs.CL"}
	}
	if cfg.Feeds.MaxPerFeed == 0 {
		cfg.Feeds.MaxPerFeed = 5
	}
	if cfg.Email.Host == "" {
		cfg.Email.Host = "smtp.gmail.com"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = 587
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Report.BatchLimit == 0 {
		cfg.Report.BatchLimit = 20
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "./data"
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. OPENAI_API_KEY (when provider is "openai")
func applyEnvOverrides(cfg *Config) {
	if cfg.AI.Provider == "openai" {
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("EMAIL_HOST"); v != "" {
		cfg.Email.Host = v
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("TO_EMAIL"); v != "" {
		cfg.Email.To = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "local", "openai", "none":
		// valid
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"local\", \"openai\", or \"none\"", cfg.AI.Provider)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if cfg.Report.BatchLimit < 1 {
		return fmt.Errorf("invalid report.batch_limit %d: must be >= 1", cfg.Report.BatchLimit)
	}

	if cfg.AI.Provider == "openai" && cfg.AI.APIKey == "" {
		slog.Warn("ai.provider is \"openai\" but no API key is set: abstractive summaries will be unavailable")
	}

	return nil
}
