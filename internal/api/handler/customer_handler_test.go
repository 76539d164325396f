package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lending-desk/internal/api/handler/dto"
	"lending-desk/internal/domain/customer"
	"lending-desk/internal/pkg/apperrors"
)

func setupCustomerHandler() (*MockCustomerService, *CustomerHandler) {
	mockService := new(MockCustomerService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mockService, NewCustomerHandler(mockService, logger)
}

func withRecordID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("recordID", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSaveCustomerHandler(t *testing.T) {
	mockService, h := setupCustomerHandler()

	saved := &customer.Customer{
		ID:       "rec-1",
		Personal: customer.PersonalInfo{FullName: "Budi Santoso"},
		Status:   customer.StatusActive,
	}
	mockService.On("SaveCustomer", mock.Anything, mock.MatchedBy(func(c customer.Customer) bool {
		return c.Personal.FullName == "Budi Santoso"
	})).Return(saved, nil)

	body := `{"personal":{"fullName":"Budi Santoso"}}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.SaveCustomer(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.CustomerResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "rec-1", resp.ID)
	assert.Equal(t, "ACTIVE", resp.Status)
	mockService.AssertExpectations(t)
}

func TestSaveCustomerHandler_InvalidJSON(t *testing.T) {
	mockService, h := setupCustomerHandler()

	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{broken`))
	rr := httptest.NewRecorder()

	h.SaveCustomer(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "SaveCustomer", mock.Anything, mock.Anything)
}

func TestSaveCustomerHandler_UnknownFieldRejected(t *testing.T) {
	mockService, h := setupCustomerHandler()

	body := `{"personal":{"fullName":"Budi"},"bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.SaveCustomer(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "SaveCustomer", mock.Anything, mock.Anything)
}

func TestSaveCustomerHandler_URLBodyIDMismatch(t *testing.T) {
	mockService, h := setupCustomerHandler()

	body := `{"id":"other","personal":{"fullName":"Budi"}}`
	req := withRecordID(httptest.NewRequest(http.MethodPut, "/customers/rec-1", strings.NewReader(body)), "rec-1")
	rr := httptest.NewRecorder()

	h.SaveCustomer(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "SaveCustomer", mock.Anything, mock.Anything)
}

func TestGetCustomerHandler_NotFound(t *testing.T) {
	mockService, h := setupCustomerHandler()

	mockService.On("GetCustomer", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	req := withRecordID(httptest.NewRequest(http.MethodGet, "/customers/ghost", nil), "ghost")
	rr := httptest.NewRecorder()

	h.GetCustomer(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var resp dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error.Message)
	mockService.AssertExpectations(t)
}

func TestListCustomersHandler(t *testing.T) {
	mockService, h := setupCustomerHandler()

	mockService.On("ListCustomers", mock.Anything).Return([]customer.Customer{
		{ID: "a"}, {ID: "b"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rr := httptest.NewRecorder()

	h.ListCustomers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []dto.CustomerResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	mockService.AssertExpectations(t)
}

func TestDeleteCustomerHandler(t *testing.T) {
	mockService, h := setupCustomerHandler()

	mockService.On("DeleteCustomer", mock.Anything, "rec-1").Return(nil)

	req := withRecordID(httptest.NewRequest(http.MethodDelete, "/customers/rec-1", nil), "rec-1")
	rr := httptest.NewRecorder()

	h.DeleteCustomer(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockService.AssertExpectations(t)
}

func TestAttachDocumentsHandler_CapExceeded(t *testing.T) {
	mockService, h := setupCustomerHandler()

	mockService.On("AttachDocuments", mock.Anything, "rec-1", mock.Anything).
		Return(nil, apperrors.ErrDocumentLimit)

	body := `{"documents":[{"name":"ktp.jpg","category":"KTP","url":"blob:1"}]}`
	req := withRecordID(httptest.NewRequest(http.MethodPost, "/customers/rec-1/documents", strings.NewReader(body)), "rec-1")
	rr := httptest.NewRecorder()

	h.AttachDocuments(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	mockService.AssertExpectations(t)
}

func TestResolveCustomerHandler_Conflict(t *testing.T) {
	mockService, h := setupCustomerHandler()

	mockService.On("ResolveCustomer", mock.Anything, "rec-1", mock.AnythingOfType("customer.Resolution")).
		Return(nil, apperrors.ErrIllegalTransition)

	body := `{"status":"SETTLED","date":"2025-04-01"}`
	req := withRecordID(httptest.NewRequest(http.MethodPost, "/customers/rec-1/resolution", strings.NewReader(body)), "rec-1")
	rr := httptest.NewRecorder()

	h.ResolveCustomer(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	mockService.AssertExpectations(t)
}

func TestResolveCustomerHandler(t *testing.T) {
	mockService, h := setupCustomerHandler()

	resolved := &customer.Customer{ID: "rec-1", Status: customer.StatusSettled}
	mockService.On("ResolveCustomer", mock.Anything, "rec-1", mock.MatchedBy(func(res customer.Resolution) bool {
		return res.Status == customer.StatusSettled && res.Amount == 5_000_000
	})).Return(resolved, nil)

	body := `{"status":"SETTLED","date":"2025-04-01","amount":5000000}`
	req := withRecordID(httptest.NewRequest(http.MethodPost, "/customers/rec-1/resolution", strings.NewReader(body)), "rec-1")
	rr := httptest.NewRecorder()

	h.ResolveCustomer(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.CustomerResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "SETTLED", resp.Status)
	mockService.AssertExpectations(t)
}

func TestPreviewTopUpHandler(t *testing.T) {
	mockService, h := setupCustomerHandler()

	draft := &customer.Customer{ID: "rec-1"}
	estimate := &customer.TopUpEstimate{MonthsElapsed: 12, MonthsRemaining: 24, EstimatedPayoff: 48_000_000}
	mockService.On("PreviewTopUp", mock.Anything, "rec-1").Return(draft, estimate, nil)

	req := withRecordID(httptest.NewRequest(http.MethodGet, "/customers/rec-1/topup-preview", nil), "rec-1")
	rr := httptest.NewRecorder()

	h.PreviewTopUp(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.TopUpPreviewResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 24, resp.MonthsRemaining)
	assert.Equal(t, 48_000_000.0, resp.EstimatedPayoff)
	mockService.AssertExpectations(t)
}

func TestExtractFieldsHandler_Unavailable(t *testing.T) {
	mockService, h := setupCustomerHandler()

	mockService.On("ExtractFields", mock.Anything, "pasted text").
		Return(nil, apperrors.ErrExtractionUnavailable)

	req := httptest.NewRequest(http.MethodPost, "/customers/extract", strings.NewReader(`{"text":"pasted text"}`))
	rr := httptest.NewRecorder()

	h.ExtractFields(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	mockService.AssertExpectations(t)
}
