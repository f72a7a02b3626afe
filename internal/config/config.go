// Package config assembles runtime settings for the DocuQuery CLI from
// defaults, a .env file, environment variables, an optional JSON config
// file, and command-line flags, in that order, later sources winning.
package config

import "time"

// SyncConfig selects and parameterizes the cloud-storage sync target.
// Type is "s3", "memory" (tests) or "" (sync disabled).
type SyncConfig struct {
	Type            string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds runtime settings for the DocuQuery CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend, e.g. http://127.0.0.1:8000.
//   - RequestTimeout: ceiling on one backend request. Ask requests run an
//     LLM server-side, so the default is generous.
//   - DatabasePath: SQLite file for the local cache.
//   - DownloadDir: where edited PDFs are saved.
//   - LogLevel: debug|info|warn|error.
//   - Sync: cloud-storage sync settings.
//
// Units: RequestTimeout is a time.Duration; JSON config accepts "90s"-style
// strings via timex.Duration.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
	DownloadDir    string
	LogLevel       string
	Sync           SyncConfig
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 90 * time.Second
	c.DatabasePath = "docuquery.db"
	c.DownloadDir = "downloads"
	c.LogLevel = "info"
	c.Sync = SyncConfig{Region: "us-east-1"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (.env included), JSON (if present) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
