package repository

import (
	"context"
	"log/slog"

	"lending-desk/internal/domain/marketing"
	"lending-desk/internal/infrastructure/storage"
)

type MarketingRepository struct {
	coll *kvCollection[marketing.Target]
}

var _ marketing.Repository = (*MarketingRepository)(nil)

func NewMarketingRepository(store storage.Store, logger *slog.Logger) *MarketingRepository {
	return &MarketingRepository{
		coll: newKVCollection(store, storage.KeyMarketingTargets,
			func(t *marketing.Target) string { return t.ID }, logger),
	}
}

func (r *MarketingRepository) Load(ctx context.Context) error {
	return r.coll.load(ctx, nil)
}

func (r *MarketingRepository) GetAll(ctx context.Context) ([]marketing.Target, error) {
	return r.coll.getAll(ctx)
}

func (r *MarketingRepository) GetByID(ctx context.Context, id string) (*marketing.Target, error) {
	return r.coll.getByID(ctx, id)
}

func (r *MarketingRepository) Upsert(ctx context.Context, t marketing.Target) error {
	return r.coll.upsert(ctx, t)
}

func (r *MarketingRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}

func (r *MarketingRepository) WatchExternal(ctx context.Context) error {
	return r.coll.watch(ctx)
}
