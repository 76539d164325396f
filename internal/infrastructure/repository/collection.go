package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"lending-desk/internal/infrastructure/storage"
	"lending-desk/internal/pkg/apperrors"
)

// kvCollection keeps an ordered slice of records in memory and mirrors
// it into a single blob-store key. The in-memory slice is authoritative
// for the session: persistence failures are logged and swallowed, and
// reads never touch the store after the initial load.
type kvCollection[T any] struct {
	store  storage.Store
	key    string
	logger *slog.Logger
	idOf   func(*T) string

	mu    sync.RWMutex
	items []T
}

func newKVCollection[T any](store storage.Store, key string, idOf func(*T) string, logger *slog.Logger) *kvCollection[T] {
	return &kvCollection[T]{
		store:  store,
		key:    key,
		idOf:   idOf,
		logger: logger.With(slog.String("component", "kvCollection"), slog.String("key", key)),
	}
}

// load reads the blob into memory. A missing key installs the seed, a
// corrupt blob degrades to an empty collection; neither is an error.
func (c *kvCollection[T]) load(ctx context.Context, seed []T) error {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.mu.Lock()
			c.items = append([]T(nil), seed...)
			c.mu.Unlock()
			if len(seed) > 0 {
				c.persist(ctx)
			}
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.WarnContext(ctx, "Stored blob is corrupt, starting from an empty collection",
			slog.Any("error", err))
		items = nil
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// persist writes the current collection out. Best effort: the caller's
// mutation has already succeeded in memory.
func (c *kvCollection[T]) persist(ctx context.Context) {
	c.mu.RLock()
	data, err := json.Marshal(c.items)
	c.mu.RUnlock()
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to marshal collection", slog.Any("error", err))
		return
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		c.logger.ErrorContext(ctx, "Failed to persist collection, keeping in-memory state",
			slog.Any("error", err))
	}
}

func (c *kvCollection[T]) getAll(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...), nil
}

func (c *kvCollection[T]) getByID(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			item := c.items[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, c.key, id)
}

// upsert replaces a record with a matching id in place, or prepends an
// unknown one so the newest record lists first.
func (c *kvCollection[T]) upsert(ctx context.Context, item T) error {
	id := c.idOf(&item)
	if id == "" {
		return apperrors.NewValidationError("id", "record id is required")
	}
	c.mu.Lock()
	replaced := false
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			c.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		c.items = append([]T{item}, c.items...)
	}
	c.mu.Unlock()

	c.persist(ctx)
	return nil
}

func (c *kvCollection[T]) delete(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, c.key, id)
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.mu.Unlock()

	c.persist(ctx)
	return nil
}

// watch replaces the whole collection whenever another process writes
// the backing key. Last write wins; a corrupt payload is skipped.
func (c *kvCollection[T]) watch(ctx context.Context) error {
	updates, err := c.store.Subscribe(ctx, c.key)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.key, err)
	}
	go func() {
		for data := range updates {
			var items []T
			if err := json.Unmarshal(data, &items); err != nil {
				c.logger.Warn("Ignoring corrupt external update", slog.Any("error", err))
				continue
			}
			c.mu.Lock()
			c.items = items
			c.mu.Unlock()
			c.logger.Info("Collection replaced from external update", slog.Int("count", len(items)))
		}
	}()
	return nil
}
