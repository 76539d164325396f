package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lending-desk/internal/domain/marketing"
	"lending-desk/internal/infrastructure/storage"
)

func TestMarketingRepository_LoadMissingKeyStartsEmpty(t *testing.T) {
	store := newMemStore()
	repo := NewMarketingRepository(store, testLogger())
	ctx := context.Background()

	assert.NoError(t, repo.Load(ctx))

	all, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
	// No seed for targets, so nothing was written either.
	assert.NotContains(t, store.blobs, storage.KeyMarketingTargets)
}

func TestMarketingRepository_RoundTrip(t *testing.T) {
	store := newMemStore()
	repo := NewMarketingRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))

	target := marketing.Target{
		ID:            "tgt-1",
		MarketingName: "Dewi",
		Year:          2025,
		Month:         8,
		TargetAmount:  decimal.NewFromInt(100_000_000),
	}
	assert.NoError(t, repo.Upsert(ctx, target))

	got, err := repo.GetByID(ctx, "tgt-1")
	assert.NoError(t, err)
	assert.Equal(t, "Dewi", got.MarketingName)
	assert.True(t, got.TargetAmount.Equal(decimal.NewFromInt(100_000_000)))

	// The persisted blob round-trips through a fresh repository.
	repo2 := NewMarketingRepository(store, testLogger())
	assert.NoError(t, repo2.Load(ctx))
	again, err := repo2.GetByID(ctx, "tgt-1")
	assert.NoError(t, err)
	assert.True(t, again.TargetAmount.Equal(target.TargetAmount))
}
