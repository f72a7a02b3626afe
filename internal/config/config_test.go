package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"docuquery"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()
	require.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
	require.Equal(t, "docuquery.db", cfg.DatabasePath)
	require.Equal(t, "downloads", cfg.DownloadDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 90*time.Second, cfg.RequestTimeout)
	require.Equal(t, "", cfg.Sync.Type)
}

func TestLoadConfig_RequestTimeoutSources(t *testing.T) {
	t.Run("env duration string", func(t *testing.T) {
		resetArgs(t)
		t.Setenv("DOCUQUERY_REQUEST_TIMEOUT", "2m")

		cfg := LoadConfig()
		require.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	})

	t.Run("malformed env value keeps default", func(t *testing.T) {
		resetArgs(t)
		t.Setenv("DOCUQUERY_REQUEST_TIMEOUT", "soon")

		cfg := LoadConfig()
		require.Equal(t, 90*time.Second, cfg.RequestTimeout)
	})

	t.Run("json accepts duration string", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"request_timeout": "45s"}`), 0o600))
		resetArgs(t, "-c", path)

		cfg := LoadConfig()
		require.Equal(t, 45*time.Second, cfg.RequestTimeout)
	})

	t.Run("flag wins in seconds", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"request_timeout": "45s"}`), 0o600))
		resetArgs(t, "-c", path, "-t", "10")

		cfg := LoadConfig()
		require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("DOCUQUERY_SERVER_URL", "http://api.example.com")
	t.Setenv("DOCUQUERY_SYNC_TYPE", "s3")
	t.Setenv("DOCUQUERY_SYNC_BUCKET", "docs")

	cfg := LoadConfig()
	require.Equal(t, "http://api.example.com", cfg.ServerBaseURL)
	require.Equal(t, "s3", cfg.Sync.Type)
	require.Equal(t, "docs", cfg.Sync.Bucket)
}

func TestLoadConfig_JSONOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://from-json:9000",
		"log_level": "debug",
		"sync": {"type": "memory"}
	}`), 0o600))

	resetArgs(t, "-c", path)
	t.Setenv("DOCUQUERY_SERVER_URL", "http://from-env")

	cfg := LoadConfig()
	require.Equal(t, "http://from-json:9000", cfg.ServerBaseURL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "memory", cfg.Sync.Type)
	// Untouched fields keep earlier values.
	require.Equal(t, "docuquery.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_base_url": "http://from-json"}`), 0o600))

	resetArgs(t, "-c", path, "-a", "http://from-flag", "-l", "warn")

	cfg := LoadConfig()
	require.Equal(t, "http://from-flag", cfg.ServerBaseURL)
	require.Equal(t, "warn", cfg.LogLevel)
}
