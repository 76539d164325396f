package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lending-desk/internal/domain/customer"
)

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) SaveCustomer(ctx context.Context, cust customer.Customer) (*customer.Customer, error) {
	ret := _m.Called(ctx, cust)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) DeleteCustomer(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MockCustomerService) AttachDocuments(ctx context.Context, id string, docs []customer.Document) (*customer.Customer, error) {
	ret := _m.Called(ctx, id, docs)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) PreviewDerivation(ctx context.Context, nom customer.NominativeData, previousPrincipal, pensionSalary customer.Money) customer.DerivationPreview {
	ret := _m.Called(ctx, nom, previousPrincipal, pensionSalary)
	return ret.Get(0).(customer.DerivationPreview)
}

func (_m *MockCustomerService) PreviewTopUp(ctx context.Context, id string) (*customer.Customer, *customer.TopUpEstimate, error) {
	ret := _m.Called(ctx, id)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	var r1 *customer.TopUpEstimate
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*customer.TopUpEstimate)
	}
	return r0, r1, ret.Error(2)
}

func (_m *MockCustomerService) SuggestSettlement(ctx context.Context, id string) (customer.Money, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(customer.Money), ret.Error(1)
}

func (_m *MockCustomerService) ResolveCustomer(ctx context.Context, id string, res customer.Resolution) (*customer.Customer, error) {
	ret := _m.Called(ctx, id, res)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) AmendResolution(ctx context.Context, id string, res customer.Resolution) (*customer.Customer, error) {
	ret := _m.Called(ctx, id, res)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) RevertResolution(ctx context.Context, id string) (*customer.Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) ExtractFields(ctx context.Context, text string) (*customer.ExtractedFields, error) {
	ret := _m.Called(ctx, text)

	var r0 *customer.ExtractedFields
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.ExtractedFields)
	}
	return r0, ret.Error(1)
}

var _ customer.CustomerService = (*MockCustomerService)(nil)
