package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"lending-desk/internal/infrastructure/monitoring"
	"lending-desk/internal/pkg/apperrors"

	"github.com/fsnotify/fsnotify"
)

// FileStore keeps one JSON document per key under a data directory.
// External processes writing the same files are observed through an
// fsnotify watcher and surfaced via Subscribe.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: cannot create data directory %s: %w", apperrors.ErrStorage, dir, err)
	}
	return &FileStore{
		dir:    dir,
		logger: logger.With("component", "FileStore", "dir", dir),
	}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: key %q", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: reading key %q: %w", apperrors.ErrStorage, key, err)
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	// Write-then-rename so a concurrent reader never sees a torn document.
	tmp := s.path(key) + ".tmp"
	err := os.WriteFile(tmp, value, 0o644)
	if err == nil {
		err = os.Rename(tmp, s.path(key))
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	monitoring.RecordStoreWrite(key, status, time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: writing key %q: %w", apperrors.ErrStorage, key, err)
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: removing key %q: %w", apperrors.ErrStorage, key, err)
	}
	return nil
}

func (s *FileStore) Subscribe(ctx context.Context, key string) (<-chan []byte, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create watcher: %w", apperrors.ErrStorage, err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("%w: cannot watch %s: %w", apperrors.ErrStorage, s.dir, err)
	}

	target := s.path(key)
	out := make(chan []byte, 1)

	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != target {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(target)
				if err != nil {
					s.logger.Warn("Failed to read changed blob", "key", key, "error", err)
					continue
				}
				select {
				case out <- data:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("Watcher error", "key", key, "error", err)
			}
		}
	}()

	return out, nil
}
