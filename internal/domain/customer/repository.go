package customer

import "context"

// Repository is the in-memory collection of customer records backed by
// a single blob in the key-value store.
//
// Upsert prepends records with a new id and replaces existing ones in
// place. Every mutation fires the persistence hook; a failed write is
// logged and ignored, the in-memory collection stays authoritative for
// the session. Load degrades a missing or corrupt blob to an empty
// collection rather than failing. WatchExternal replaces the whole
// collection when another process writes the blob (last write wins).
type Repository interface {
	Load(ctx context.Context) error

	GetAll(ctx context.Context) ([]Customer, error)

	GetByID(ctx context.Context, id string) (*Customer, error)

	Upsert(ctx context.Context, c Customer) error

	Delete(ctx context.Context, id string) error

	WatchExternal(ctx context.Context) error
}
