package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first (missing file is
// fine); real environment variables are not overridden by it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setIfPresent := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setIfPresent(&cfg.ServerBaseURL, "DOCUQUERY_SERVER_URL")
	if v, ok := os.LookupEnv("DOCUQUERY_REQUEST_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	setIfPresent(&cfg.DatabasePath, "DOCUQUERY_DATABASE_PATH")
	setIfPresent(&cfg.DownloadDir, "DOCUQUERY_DOWNLOAD_DIR")
	setIfPresent(&cfg.LogLevel, "DOCUQUERY_LOG_LEVEL")

	setIfPresent(&cfg.Sync.Type, "DOCUQUERY_SYNC_TYPE")
	setIfPresent(&cfg.Sync.Bucket, "DOCUQUERY_SYNC_BUCKET")
	setIfPresent(&cfg.Sync.Region, "DOCUQUERY_SYNC_REGION")
	setIfPresent(&cfg.Sync.Endpoint, "DOCUQUERY_SYNC_ENDPOINT")
	setIfPresent(&cfg.Sync.AccessKeyID, "DOCUQUERY_SYNC_ACCESS_KEY_ID")
	setIfPresent(&cfg.Sync.SecretAccessKey, "DOCUQUERY_SYNC_SECRET_ACCESS_KEY")
}
