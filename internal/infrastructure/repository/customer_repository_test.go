package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lending-desk/internal/domain/customer"
	"lending-desk/internal/infrastructure/storage"
	"lending-desk/internal/pkg/apperrors"
)

// memStore is an in-memory Store with a manually driven subscription
// channel, standing in for the file and postgres backends.
type memStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	updates map[string]chan []byte

	failSet bool
}

func newMemStore() *memStore {
	return &memStore{
		blobs:   make(map[string][]byte),
		updates: make(map[string]chan []byte),
	}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, key)
	}
	return data, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return fmt.Errorf("disk full")
	}
	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, key)
	}
	delete(m.blobs, key)
	return nil
}

func (m *memStore) Subscribe(_ context.Context, key string) (<-chan []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan []byte, 1)
	m.updates[key] = ch
	return ch, nil
}

// pushExternal simulates another process writing the key.
func (m *memStore) pushExternal(key string, value []byte) {
	m.mu.Lock()
	ch := m.updates[key]
	m.mu.Unlock()
	ch <- value
}

var _ storage.Store = (*memStore)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCustomerRepository_LoadInstallsSeedOnMissingKey(t *testing.T) {
	store := newMemStore()
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()

	assert.NoError(t, repo.Load(ctx))

	all, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "seed-0001", all[0].ID)
	// The seed was persisted so the next process sees the same data.
	assert.Contains(t, store.blobs, storage.KeyCustomers)
}

func TestCustomerRepository_LoadDegradesCorruptBlob(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`{not json`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()

	assert.NoError(t, repo.Load(ctx))

	all, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestCustomerRepository_LoadExistingBlobSkipsSeed(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[{"id":"existing-1","personal":{"fullName":"Budi"}}]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()

	assert.NoError(t, repo.Load(ctx))

	all, _ := repo.GetAll(ctx)
	assert.Len(t, all, 1)
	assert.Equal(t, "existing-1", all[0].ID)
}

func TestCustomerRepository_UpsertPrependsNewRecords(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))

	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "first"}))
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "second"}))

	all, _ := repo.GetAll(ctx)
	assert.Equal(t, []string{"second", "first"}, []string{all[0].ID, all[1].ID})
}

func TestCustomerRepository_UpsertReplacesInPlace(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))

	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "a"}))
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "b"}))
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{
		ID:       "a",
		Personal: customer.PersonalInfo{FullName: "Renamed"},
	}))

	all, _ := repo.GetAll(ctx)
	// "a" keeps its position at the tail, it is not re-prepended.
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "Renamed", all[1].Personal.FullName)
}

func TestCustomerRepository_UpsertRequiresID(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))

	assert.ErrorIs(t, repo.Upsert(ctx, customer.Customer{}), apperrors.ErrValidation)
}

func TestCustomerRepository_PersistFailureKeepsMemoryState(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))

	store.failSet = true
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "a"}))

	got, err := repo.GetByID(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, "a", got.ID)
}

func TestCustomerRepository_GetByIDReturnsCopy(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "a"}))

	got, _ := repo.GetByID(ctx, "a")
	got.Personal.FullName = "mutated"

	again, _ := repo.GetByID(ctx, "a")
	assert.Empty(t, again.Personal.FullName)
}

func TestCustomerRepository_Delete(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "a"}))

	assert.NoError(t, repo.Delete(ctx, "a"))
	assert.ErrorIs(t, repo.Delete(ctx, "a"), apperrors.ErrNotFound)

	_, err := repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCustomerRepository_ExternalUpdateReplacesCollection(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "local"}))
	assert.NoError(t, repo.WatchExternal(ctx))

	done := make(chan struct{})
	go func() {
		store.pushExternal(storage.KeyCustomers, []byte(`[{"id":"remote-1"},{"id":"remote-2"}]`))
		close(done)
	}()
	<-done

	// Last write wins: the whole collection is replaced.
	assert.Eventually(t, func() bool {
		all, _ := repo.GetAll(ctx)
		return len(all) == 2 && all[0].ID == "remote-1"
	}, time.Second, 10*time.Millisecond)
}

func TestCustomerRepository_ExternalUpdateSkipsCorruptPayload(t *testing.T) {
	store := newMemStore()
	store.blobs[storage.KeyCustomers] = []byte(`[]`)
	repo := NewCustomerRepository(store, testLogger())
	ctx := context.Background()
	assert.NoError(t, repo.Load(ctx))
	assert.NoError(t, repo.Upsert(ctx, customer.Customer{ID: "local"}))
	assert.NoError(t, repo.WatchExternal(ctx))

	store.pushExternal(storage.KeyCustomers, []byte(`{broken`))
	store.pushExternal(storage.KeyCustomers, []byte(`[{"id":"remote"}]`))

	assert.Eventually(t, func() bool {
		all, _ := repo.GetAll(ctx)
		return len(all) == 1 && all[0].ID == "remote"
	}, time.Second, 10*time.Millisecond)
}
