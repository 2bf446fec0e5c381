package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalGateway stores objects as files under root/<bucket>/<key>.
type LocalGateway struct {
	root string
}

// NewLocalGateway creates a gateway rooted at dir.
func NewLocalGateway(dir string) *LocalGateway {
	return &LocalGateway{root: dir}
}

// List returns keys under prefix in lexical order.
func (l *LocalGateway) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	base := filepath.Join(l.root, bucket)

	var keys []string

	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) && !isDirMarker(key) {
			keys = append(keys, key)
		}

		return nil
	})
	if err != nil {
		return nil, listError(bucket, prefix, err)
	}

	sort.Strings(keys)

	return keys, nil
}

// Download copies the object to localPath.
func (l *LocalGateway) Download(ctx context.Context, bucket, key, localPath string) error {
	if err := ctx.Err(); err != nil {
		return downloadError(bucket, key, err)
	}

	src := l.objectPath(bucket, key)
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return downloadError(bucket, key, ErrNotFound)
	}

	if err := copyFile(src, localPath); err != nil {
		return downloadError(bucket, key, err)
	}

	return nil
}

// Upload copies localPath into the bucket under key.
func (l *LocalGateway) Upload(ctx context.Context, localPath, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return uploadError(bucket, key, err)
	}

	dst := l.objectPath(bucket, key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return uploadError(bucket, key, err)
	}

	if err := copyFile(localPath, dst); err != nil {
		return uploadError(bucket, key, err)
	}

	return nil
}

func (l *LocalGateway) objectPath(bucket, key string) string {
	return filepath.Join(l.root, bucket, filepath.FromSlash(key))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	return writeAtomic(dst, in)
}

// writeAtomic writes r to a temporary sibling of dst and renames it into
// place, so dst either has the full content or does not exist.
func writeAtomic(dst string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".partial-*")
	if err != nil {
		return err
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("copy: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}
