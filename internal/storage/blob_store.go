package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore saves uploaded files to disk under a base directory and hands back
// stable references of the form "uploads/<timestamp>-<name>". The references
// double as URL paths under the static /uploads mount.
type BlobStore struct {
	baseDir string
}

// referencePrefix is the URL prefix under which stored blobs are served.
const referencePrefix = "uploads"

// NewBlobStore creates the base directory if missing. Failure here is a
// startup failure, not a per-request one.
func NewBlobStore(baseDir string) (*BlobStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("upload base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &BlobStore{baseDir: baseDir}, nil
}

// Store writes the stream to disk and returns its reference. The reference
// combines the ingestion timestamp with the client-supplied name; an existing
// file is never overwritten, so two stores always yield distinct references.
// The request deadline is honored: an expired context fails the write before
// any file is created.
func (s *BlobStore) Store(ctx context.Context, slot, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s upload: %w", slot, err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), safeFilename(originalName))

	out, target, err := s.createExclusive(name)
	if err != nil {
		return "", fmt.Errorf("%s upload: %w", slot, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, contextReader{ctx: ctx, r: r}); err != nil {
		out.Close()
		os.Remove(target)
		return "", fmt.Errorf("%s upload: write %s: %w", slot, target, err)
	}
	return path.Join(referencePrefix, filepath.Base(target)), nil
}

// contextReader fails an in-flight copy once the request deadline passes, so
// a stalled upload stream cannot hold the request open indefinitely.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// createExclusive opens a fresh file for the given name, suffixing a counter
// when the timestamped name already exists.
func (s *BlobStore) createExclusive(name string) (*os.File, string, error) {
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%d-%s", i, name)
		}
		target := filepath.Join(s.baseDir, candidate)
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return out, target, nil
		}
		if !os.IsExist(err) {
			return nil, "", fmt.Errorf("create %s: %w", target, err)
		}
	}
}

// safeFilename strips any path components from the untrusted client name.
func safeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	return name
}
