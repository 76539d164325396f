package marketing

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Load(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *MockRepository) GetAll(ctx context.Context) ([]Target, error) {
	ret := _m.Called(ctx)

	var r0 []Target
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]Target)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) GetByID(ctx context.Context, id string) (*Target, error) {
	ret := _m.Called(ctx, id)

	var r0 *Target
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Target)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) Upsert(ctx context.Context, t Target) error {
	ret := _m.Called(ctx, t)
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
