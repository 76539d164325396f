package customer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lending-desk/internal/event"
)

// MockRepository is a hand-rolled testify mock for Repository, shared by
// the service tests.
type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Load(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *MockRepository) GetAll(ctx context.Context) ([]Customer, error) {
	ret := _m.Called(ctx)

	var r0 []Customer
	if rf, ok := ret.Get(0).(func(context.Context) []Customer); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, string) *Customer); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) Upsert(ctx context.Context, c Customer) error {
	ret := _m.Called(ctx, c)
	return ret.Error(0)
}

func (_m *MockRepository) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MockRepository) WatchExternal(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

var _ Repository = (*MockRepository)(nil)

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishRecordSaved(ctx context.Context, ev event.RecordSavedEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishRecordDeleted(ctx context.Context, ev event.RecordDeletedEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishStatusChanged(ctx context.Context, ev event.StatusChangedEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)

type MockFieldExtractor struct {
	mock.Mock
}

func (_m *MockFieldExtractor) ExtractFields(ctx context.Context, text string) (*ExtractedFields, error) {
	ret := _m.Called(ctx, text)

	var r0 *ExtractedFields
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ExtractedFields)
	}
	return r0, ret.Error(1)
}

var _ FieldExtractor = (*MockFieldExtractor)(nil)

type MockScratchCleaner struct {
	mock.Mock
}

func (_m *MockScratchCleaner) ClearRecordScratch(ctx context.Context, recordID string) error {
	ret := _m.Called(ctx, recordID)
	return ret.Error(0)
}

var _ ScratchCleaner = (*MockScratchCleaner)(nil)
