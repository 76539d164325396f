package storage

import "context"

// Well-known keys in the blob store. Each key holds one JSON document;
// writes replace the whole document.
const (
	KeyCustomers        = "customers"
	KeyMarketingTargets = "marketing_targets"
	KeyActiveTab        = "ui.active_tab"
	KeyEditingID        = "ui.editing_id"
	DraftKeyPrefix      = "draft."
)

// Store is the persistence boundary: string keys, opaque JSON values,
// whole-document overwrite semantics. Subscribe delivers values written
// by another process for the same key (last write wins, no merging);
// implementations close the channel when ctx is done.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Subscribe(ctx context.Context, key string) (<-chan []byte, error)
}

func DraftKey(recordID string) string {
	return DraftKeyPrefix + recordID
}
