package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("blob not found")

// BlobInfo describes a stored blob for serving.
type BlobInfo struct {
	Size        int64
	ContentType string
}

// BlobStore is the physical storage collaborator. Keys are flat
// stored-filename values generated by the file lifecycle manager; the store
// never interprets them.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, *BlobInfo, error)
	Remove(ctx context.Context, key string) error
}

// ValidKey rejects anything that could escape the flat keyed space. Stored
// filenames are uuid+extension, so separators and traversal sequences only
// appear in forged requests.
func ValidKey(key string) bool {
	if key == "" || len(key) > 255 {
		return false
	}
	if strings.ContainsAny(key, "/\\") {
		return false
	}
	if strings.Contains(key, "..") {
		return false
	}
	return true
}
