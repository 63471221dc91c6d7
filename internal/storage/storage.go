// Package storage holds the object-store abstraction for uploaded document
// bytes. Only document metadata lives in the application snapshot; the raw
// files are streamed to an S3-compatible backend and never touch local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions carries optional upload parameters. Size must be the exact
// byte count when known; -1 lets the backend chunk the stream itself.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes one stored document object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage stores and serves document bytes by key. Implementations must be
// safe for concurrent use; all methods honor the passed context.
type Storage interface {
	// Put uploads the document bytes under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens the document bytes for streaming alongside their info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes the object. Used to roll back an upload whose metadata
	// was never attached.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for downloading the object
	// without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
