package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets YAML carry values like "30s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds everything the scraper needs to talk to funda and to the
// local filesystem. Values come from defaults, then an optional YAML file,
// then environment variables, in that order.
type Config struct {
	BaseURL        string            `yaml:"base_url"`
	UserAgent      string            `yaml:"user_agent"`
	Headers        map[string]string `yaml:"headers"`
	DataDir        string            `yaml:"data_dir"`
	LedgerPath     string            `yaml:"ledger_path"`
	RequestTimeout Duration          `yaml:"request_timeout"`
	ListPageDelay  Duration          `yaml:"list_page_delay"`
	Parallelism    int               `yaml:"parallelism"` // 0 means one worker per CPU
	Render         bool              `yaml:"render"`      // fetch through headless Chrome
}

// Default returns the configuration targeting funda.nl. The header set is
// the conventional browser identity funda expects from plain HTTP clients.
func Default() *Config {
	return &Config{
		BaseURL:   "https://www.funda.nl",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
		DataDir:        "data",
		LedgerPath:     "data/runs.db",
		RequestTimeout: Duration(30 * time.Second),
		ListPageDelay:  Duration(time.Second),
	}
}

// Load builds the effective configuration. path may be empty, in which case
// only defaults and environment variables apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("FUNDA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FUNDA_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("FUNDA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FUNDA_LEDGER_PATH"); v != "" {
		cfg.LedgerPath = v
	}

	return cfg, nil
}
