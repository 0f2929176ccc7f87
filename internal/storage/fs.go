package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore writes objects under a local root directory, one file per key.
// Intended for local runs and tests.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		return nil, fmt.Errorf("filesystem storage requires a root path")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) Put(_ context.Context, bucket, key string, body []byte, _ string) error {
	dest := filepath.Join(s.root, bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", key, err)
	}
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

func (s *FSStore) Close() error { return nil }
