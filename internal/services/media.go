package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MediaStore publishes documents at a URL Twilio can fetch.
type MediaStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	// Purge removes media published before cutoff and reports how many
	// objects were removed.
	Purge(ctx context.Context, cutoff time.Time) (int, error)
}

// MediaPathPrefix is the route the local media directory is served under.
const MediaPathPrefix = "/media"

// LocalMediaStore keeps documents in a directory served by the HTTP server.
type LocalMediaStore struct {
	dir     string
	baseURL string
}

// NewLocalMediaStore creates the media directory if needed.
func NewLocalMediaStore(dir, publicBaseURL string) (*LocalMediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalMediaStore{
		dir:     dir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Dir returns the directory to serve.
func (s *LocalMediaStore) Dir() string {
	return s.dir
}

func (s *LocalMediaStore) Put(_ context.Context, key string, content []byte, _ string) (string, error) {
	key = filepath.ToSlash(filepath.Clean("/" + key))[1:]
	if key == "" {
		return "", errors.New("empty media key")
	}

	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("write media %s: %w", key, err)
	}
	return s.baseURL + MediaPathPrefix + "/" + key, nil
}

func (s *LocalMediaStore) Purge(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("purge media: %w", err)
	}
	return removed, nil
}
