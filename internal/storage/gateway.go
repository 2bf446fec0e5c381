// Package storage provides access to the object store holding the
// spreadsheet exports and their CSV outputs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// Storage errors. Every gateway error wraps exactly one of these.
var (
	ErrList     = errors.New("list failed")
	ErrDownload = errors.New("download failed")
	ErrUpload   = errors.New("upload failed")
	ErrNotFound = errors.New("object not found")
)

// Gateway is the subset of object store operations the pipeline needs.
// Each call is atomic from the caller's point of view: a failed download
// leaves no local file and a failed upload leaves no object.
type Gateway interface {
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	Download(ctx context.Context, bucket, key, localPath string) error
	Upload(ctx context.Context, localPath, bucket, key string) error
}

// Key joins an object prefix and a file name with a single slash.
func Key(prefix, name string) string {
	return path.Join(strings.TrimSuffix(prefix, "/"), name)
}

// isDirMarker reports whether key is a "folder" placeholder object.
func isDirMarker(key string) bool {
	return key == "" || strings.HasSuffix(key, "/")
}

func listError(bucket, prefix string, err error) error {
	return fmt.Errorf("%w: s3://%s/%s: %w", ErrList, bucket, prefix, err)
}

func downloadError(bucket, key string, err error) error {
	return fmt.Errorf("%w: s3://%s/%s: %w", ErrDownload, bucket, key, err)
}

func uploadError(bucket, key string, err error) error {
	return fmt.Errorf("%w: s3://%s/%s: %w", ErrUpload, bucket, key, err)
}

// timeoutGateway bounds every call with a deadline.
type timeoutGateway struct {
	next    Gateway
	timeout time.Duration
}

// WithTimeout wraps g so each call is cancelled after d. A zero or
// negative d returns g unchanged.
func WithTimeout(g Gateway, d time.Duration) Gateway {
	if d <= 0 {
		return g
	}

	return &timeoutGateway{next: g, timeout: d}
}

func (t *timeoutGateway) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.next.List(ctx, bucket, prefix)
}

func (t *timeoutGateway) Download(ctx context.Context, bucket, key, localPath string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.next.Download(ctx, bucket, key, localPath)
}

func (t *timeoutGateway) Upload(ctx context.Context, localPath, bucket, key string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.next.Upload(ctx, localPath, bucket, key)
}
