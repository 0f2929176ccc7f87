package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/finsight-labs/disclosureflow/internal/config"
)

// GCSStore uploads objects to Google Cloud Storage. Writes overwrite
// silently; the archive key scheme makes re-runs idempotent.
type GCSStore struct {
	client     *gstorage.Client
	putTimeout time.Duration
}

// NewGCSStore creates a GCS-backed store. When a credentials file is
// configured it overrides ambient credentials.
func NewGCSStore(ctx context.Context, cfg config.StorageConfig) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}
	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}
	return &GCSStore{client: client, putTimeout: cfg.PutTimeout}, nil
}

func (s *GCSStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	writeCtx, cancel := putContext(ctx, s.putTimeout)
	defer cancel()

	writer := s.client.Bucket(bucket).Object(key).NewWriter(writeCtx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, bytes.NewReader(body)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("io.Copy to GCS failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS write for %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
