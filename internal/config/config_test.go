package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CATALOG_API_KEY", "test-key")
	t.Setenv("STORAGE_BACKEND", "fs")
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Catalog.APIKey)
	assert.NotEmpty(t, cfg.Catalog.BaseURL)
	assert.Equal(t, 0.1, cfg.Watermark.Opacity)
	assert.Equal(t, 100*time.Millisecond, cfg.PacingInterval)
	assert.Equal(t, 50*time.Second, cfg.Storage.PutTimeout)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("CATALOG_API_KEY", "")
	t.Setenv("STORAGE_BACKEND", "fs")
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_API_KEY")
}

func TestLoadRejectsOpacityOutOfRange(t *testing.T) {
	setBaseEnv(t)

	for _, v := range []string{"0", "-0.5", "1.5"} {
		t.Setenv("WATERMARK_OPACITY", v)
		_, err := Load()
		require.Error(t, err, "opacity %s", v)
		assert.Contains(t, err.Error(), "WATERMARK_OPACITY")
	}
}

func TestLoadParsesTunables(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("WATERMARK_OPACITY", "0.25")
	t.Setenv("PACING_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Watermark.Opacity)
	assert.Equal(t, 250*time.Millisecond, cfg.PacingInterval)
}

func TestValidateStorageBackends(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "s3 requires region",
			mutate:  func(c *Config) { c.Storage.Backend = "s3"; c.Storage.Region = "" },
			wantErr: "AWS_REGION",
		},
		{
			name:    "fs requires path",
			mutate:  func(c *Config) { c.Storage.Backend = "fs"; c.Storage.LocalPath = "" },
			wantErr: "STORAGE_LOCAL_PATH",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "tape" },
			wantErr: "unsupported storage backend",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Catalog:   CatalogConfig{BaseURL: "https://api.example.com", APIKey: "k"},
				Storage:   StorageConfig{Backend: "fs", LocalPath: "/tmp/archive"},
				Watermark: WatermarkConfig{Opacity: 0.1},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
