package marketing

import "context"

// Repository holds the marketing targets, persisted as one blob in the
// key-value store with the same upsert and degradation rules as the
// customer collection.
type Repository interface {
	Load(ctx context.Context) error

	GetAll(ctx context.Context) ([]Target, error)

	GetByID(ctx context.Context, id string) (*Target, error)

	Upsert(ctx context.Context, t Target) error

	Delete(ctx context.Context, id string) error

	WatchExternal(ctx context.Context) error
}
