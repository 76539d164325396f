package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lending-desk/internal/infrastructure/storage"
	"lending-desk/internal/pkg/apperrors"
)

// DraftDebounce is how long a draft sits in memory before it is written
// out. Rapid form edits collapse into a single store write.
const DraftDebounce = 750 * time.Millisecond

// ScratchStore keeps the per-session UI state: unsaved form drafts, the
// active tab and the id of the record being edited. Drafts are written
// with a debounce; everything else immediately.
type ScratchStore struct {
	store  storage.Store
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewScratchStore(store storage.Store, logger *slog.Logger) *ScratchStore {
	return &ScratchStore{
		store:   store,
		logger:  logger.With(slog.String("component", "scratchStore")),
		pending: make(map[string]*time.Timer),
	}
}

// SaveDraft schedules a debounced write of the draft payload. The
// payload is opaque to the store; the edit form owns its shape.
func (s *ScratchStore) SaveDraft(ctx context.Context, recordID string, payload json.RawMessage) error {
	if recordID == "" {
		return apperrors.NewValidationError("id", "record id is required")
	}
	if !json.Valid(payload) {
		return apperrors.NewValidationError("draft", "draft payload is not valid JSON")
	}
	key := storage.DraftKey(recordID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.pending[key]; ok {
		t.Stop()
	}
	data := append(json.RawMessage(nil), payload...)
	s.pending[key] = time.AfterFunc(DraftDebounce, func() {
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
		if err := s.store.Set(context.Background(), key, data); err != nil {
			s.logger.Error("Failed to persist draft", slog.String("key", key), slog.Any("error", err))
		}
	})
	return nil
}

func (s *ScratchStore) LoadDraft(ctx context.Context, recordID string) (json.RawMessage, error) {
	if recordID == "" {
		return nil, apperrors.NewValidationError("id", "record id is required")
	}
	return s.store.Get(ctx, storage.DraftKey(recordID))
}

// ClearDraft cancels any pending write and removes the stored draft.
func (s *ScratchStore) ClearDraft(ctx context.Context, recordID string) error {
	key := storage.DraftKey(recordID)
	s.mu.Lock()
	if t, ok := s.pending[key]; ok {
		t.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()

	if err := s.store.Remove(ctx, key); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

func (s *ScratchStore) SetActiveTab(ctx context.Context, tab string) error {
	return s.store.Set(ctx, storage.KeyActiveTab, []byte(`"`+tab+`"`))
}

func (s *ScratchStore) ActiveTab(ctx context.Context) (string, error) {
	data, err := s.store.Get(ctx, storage.KeyActiveTab)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	var tab string
	if err := json.Unmarshal(data, &tab); err != nil {
		return "", nil
	}
	return tab, nil
}

func (s *ScratchStore) SetEditingID(ctx context.Context, recordID string) error {
	return s.store.Set(ctx, storage.KeyEditingID, []byte(`"`+recordID+`"`))
}

func (s *ScratchStore) EditingID(ctx context.Context) (string, error) {
	data, err := s.store.Get(ctx, storage.KeyEditingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return "", nil
	}
	return id, nil
}

func (s *ScratchStore) ClearEditingID(ctx context.Context) error {
	if err := s.store.Remove(ctx, storage.KeyEditingID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// ClearRecordScratch drops everything tied to one record: its draft and,
// if it was the record being edited, the editing pointer.
func (s *ScratchStore) ClearRecordScratch(ctx context.Context, recordID string) error {
	if err := s.ClearDraft(ctx, recordID); err != nil {
		return err
	}
	current, err := s.EditingID(ctx)
	if err != nil {
		return err
	}
	if current == recordID {
		return s.ClearEditingID(ctx)
	}
	return nil
}
