package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// CatalogConfig configures access to the remote disclosure catalog.
type CatalogConfig struct {
	BaseURL string
	APIKey  string
}

// StorageConfig configures the object-store backend. Backend selects the
// adapter; the remaining fields are backend-specific.
type StorageConfig struct {
	Backend            string // "s3", "gcs" or "fs"
	DefaultBucket      string
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	GCSCredentialsFile string
	LocalPath          string
	PutTimeout         time.Duration
}

// WatermarkConfig configures the optional per-page logo stamp on rendered
// transcripts. An empty LogoURL disables watermarking.
type WatermarkConfig struct {
	LogoURL string
	Opacity float64
}

// Config is the full pipeline configuration, resolved once at startup.
type Config struct {
	Catalog   CatalogConfig
	Storage   StorageConfig
	Watermark WatermarkConfig

	// PacingInterval is the minimum spacing between processed units. It is
	// a tunable, not a backoff policy.
	PacingInterval time.Duration
}

// Load reads configuration from the environment. A local .env file is
// applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Catalog: CatalogConfig{
			BaseURL: GetEnv("CATALOG_BASE_URL", "https://api.quartr.com/public/v1"),
			APIKey:  GetEnv("CATALOG_API_KEY", ""),
		},
		Storage: StorageConfig{
			Backend:            GetEnv("STORAGE_BACKEND", "s3"),
			DefaultBucket:      GetEnv("STORAGE_DEFAULT_BUCKET", ""),
			Region:             GetEnv("AWS_REGION", ""),
			AccessKeyID:        GetEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey:    GetEnv("AWS_SECRET_ACCESS_KEY", ""),
			GCSCredentialsFile: GetEnv("GCS_CREDENTIALS_FILE", ""),
			LocalPath:          GetEnv("STORAGE_LOCAL_PATH", ""),
		},
		Watermark: WatermarkConfig{
			LogoURL: GetEnv("WATERMARK_LOGO_URL", ""),
		},
	}

	var err error
	if cfg.Watermark.Opacity, err = parseFloat("WATERMARK_OPACITY", 0.1); err != nil {
		return nil, err
	}
	if cfg.PacingInterval, err = parseDuration("PACING_INTERVAL", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Storage.PutTimeout, err = parseDuration("STORAGE_PUT_TIMEOUT", 50*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required value is present and in range.
func (c *Config) Validate() error {
	if c.Catalog.APIKey == "" {
		return fmt.Errorf("CATALOG_API_KEY environment variable must be set")
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL must not be empty")
	}
	if c.Watermark.Opacity <= 0 || c.Watermark.Opacity > 1 {
		return fmt.Errorf("WATERMARK_OPACITY must be in (0,1], got %v", c.Watermark.Opacity)
	}

	switch c.Storage.Backend {
	case "s3":
		if c.Storage.Region == "" {
			return fmt.Errorf("AWS_REGION must be set for the s3 storage backend")
		}
	case "gcs":
		// Credentials file is optional; ambient credentials work too.
	case "fs":
		if c.Storage.LocalPath == "" {
			return fmt.Errorf("STORAGE_LOCAL_PATH must be set for the fs storage backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	return nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
