// Package storage provides the object-store boundary of the pipeline: a
// small Put-oriented interface with GCS, S3 and filesystem adapters.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight-labs/disclosureflow/internal/config"
)

// ObjectStore uploads byte payloads under deterministic keys. Put is a
// single attempt; the caller owns failure accounting.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
	Close() error
}

// putContext bounds one write. A zero timeout means no per-write deadline;
// the transport's own limits still apply.
func putContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// New creates the object store selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case "s3":
		slog.Info("Creating S3 storage adapter.", "region", cfg.Region)
		return NewS3Store(ctx, cfg)
	case "gcs":
		slog.Info("Creating GCS storage adapter.")
		return NewGCSStore(ctx, cfg)
	case "fs":
		slog.Info("Creating filesystem storage adapter.", "path", cfg.LocalPath)
		return NewFSStore(cfg.LocalPath)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
