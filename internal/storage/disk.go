package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// DiskStore keeps blobs as flat files under a single directory, the layout
// the uploads/ directory has always had.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if !ValidKey(key) {
		return fmt.Errorf("invalid blob key %q", key)
	}

	f, err := os.OpenFile(s.path(key), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create blob file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(s.path(key))
		return fmt.Errorf("failed to write blob: %w", err)
	}

	return f.Close()
}

func (s *DiskStore) Open(ctx context.Context, key string) (io.ReadCloser, *BlobInfo, error) {
	if !ValidKey(key) {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	info := &BlobInfo{
		Size:        stat.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
	}
	return f, info, nil
}

func (s *DiskStore) Remove(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return ErrNotFound
	}

	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.root, key)
}
