package config

import (
	"encoding/json"
	"os"

	"docuquery/internal/flagx"
	"docuquery/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "set to zero value". RequestTimeout
// uses timex.Duration so the file can say "90s" instead of nanoseconds.
type jsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DatabasePath   *string         `json:"database_path"`
	DownloadDir    *string         `json:"download_dir"`
	LogLevel       *string         `json:"log_level"`
	Sync           *struct {
		Type            *string `json:"type"`
		Bucket          *string `json:"bucket"`
		Region          *string `json:"region"`
		Endpoint        *string `json:"endpoint"`
		AccessKeyID     *string `json:"access_key_id"`
		SecretAccessKey *string `json:"secret_access_key"`
	} `json:"sync"`
}

// parseJSON overlays Config with values loaded from a JSON file named by
// the -c/-config flags. When no flag is given, nothing is loaded. Read or
// unmarshal errors panic; the caller treats a broken config file as fatal.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	overlay(&cfg.ServerBaseURL, jc.ServerBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.DownloadDir, jc.DownloadDir)
	overlay(&cfg.LogLevel, jc.LogLevel)

	if jc.Sync != nil {
		overlay(&cfg.Sync.Type, jc.Sync.Type)
		overlay(&cfg.Sync.Bucket, jc.Sync.Bucket)
		overlay(&cfg.Sync.Region, jc.Sync.Region)
		overlay(&cfg.Sync.Endpoint, jc.Sync.Endpoint)
		overlay(&cfg.Sync.AccessKeyID, jc.Sync.AccessKeyID)
		overlay(&cfg.Sync.SecretAccessKey, jc.Sync.SecretAccessKey)
	}
}
