package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, "shopfront.db", c.DataFile)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{name: "all flags", args: []string{"-a", "http://shop:9000", "-d", "/tmp/x.db", "-t", "3"},
			expected: &Config{APIBaseURL: "http://shop:9000", DataFile: "/tmp/x.db", RequestTimeout: 3 * time.Second}},
		{name: "foreign flags ignored", args: []string{"-c", "cfg.json", "-t", "5"},
			expected: &Config{RequestTimeout: 5 * time.Second}},
		{name: "bad timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "http://json:1",
		"request_timeout": "7s",
	})

	t.Run("overlays set fields", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		want := defaults()
		want.APIBaseURL = "http://json:1"
		want.RequestTimeout = 7 * time.Second
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("no flag leaves config untouched", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, nil))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(defaults(), []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(defaults(), []string{"-c", filepath.Join(t.TempDir(), "none.json")}))
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SHOP_API_BASE_URL", "http://env:2")
	t.Setenv("SHOP_REQUEST_TIMEOUT", "4s")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, nil))

	assert.Equal(t, "http://env:2", cfg.APIBaseURL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "shopfront.db", cfg.DataFile, "unset variables keep defaults")
}

func TestParseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHOP_GOOGLE_CLIENT_ID=from-file\nSHOP_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("SHOP_LOG_LEVEL", "warn")
	// godotenv sets variables process-wide; register them for cleanup.
	t.Setenv("SHOP_GOOGLE_CLIENT_ID", "")
	require.NoError(t, os.Unsetenv("SHOP_GOOGLE_CLIENT_ID"))

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, []string{"-e", path}))

	assert.Equal(t, "from-file", cfg.GoogleClientID)
	assert.Equal(t, "warn", cfg.LogLevel, "process environment wins over the file")
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("SHOP_REQUEST_TIMEOUT", "soon")
	require.Error(t, parseEnv(defaults(), nil))
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("SHOP_API_BASE_URL", "http://env:2")
	t.Setenv("SHOP_DATA_FILE", "env.db")
	path := writeTempJSON(t, map[string]any{"data_file": "json.db"})

	cfg, err := Load([]string{"-c", path, "-t", "2"})
	require.NoError(t, err)

	assert.Equal(t, "http://env:2", cfg.APIBaseURL)
	assert.Equal(t, "json.db", cfg.DataFile)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}
