package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lending-desk/internal/api/handler/dto"
	"lending-desk/internal/domain/customer"
	"lending-desk/internal/pkg/apperrors"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getRecordIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "recordID")
	if id == "" {
		return "", fmt.Errorf("%w: recordID not found in URL path", apperrors.ErrInvalidArgument)
	}
	return id, nil
}

// SaveCustomer handles POST /customers and PUT /customers/{recordID}
// @Summary Create or replace a customer record
// @Description Validates the record, recomputes the derived loan figures and upserts it. A request without an id creates a new record.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.SaveCustomerRequest true "Customer record"
// @Success 200 {object} dto.CustomerResponse "Record saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 422 {object} dto.ErrorResponse "Document category cap exceeded"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) SaveCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if urlID := chi.URLParam(r, "recordID"); urlID != "" {
		if req.ID != "" && req.ID != urlID {
			respondError(w, fmt.Errorf("%w: body id does not match URL", apperrors.ErrInvalidArgument))
			return
		}
		req.ID = urlID
	}

	cust, err := req.ToDomain()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	saved, err := h.service.SaveCustomer(r.Context(), cust)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to save record", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(saved, saved.IsMaturedDisplay(time.Now())))
}

// GetCustomer handles GET /customers/{recordID}
// @Summary Retrieve a customer record
// @Tags Customers
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} dto.CustomerResponse "Record retrieved"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /customers/{recordID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	cust, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get record", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust, cust.IsMaturedDisplay(time.Now())))
}

// ListCustomers handles GET /customers
// @Summary List customer records
// @Description Returns every record, newest first.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse "Records listed"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list records", slog.Any("error", err))
		respondError(w, err)
		return
	}
	now := time.Now()
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		resp = append(resp, dto.NewCustomerResponse(c, c.IsMaturedDisplay(now)))
	}
	respondJSON(w, http.StatusOK, resp)
}

// DeleteCustomer handles DELETE /customers/{recordID}
// @Summary Delete a customer record
// @Description Removes the record and any scratch state tied to it.
// @Tags Customers
// @Param recordID path string true "Record ID"
// @Success 204 "Record deleted"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /customers/{recordID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.DeleteCustomer(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachDocuments handles POST /customers/{recordID}/documents
// @Summary Attach documents to a record
// @Description Appends archive entries, enforcing the per-category caps over the combined archive.
// @Tags Customers
// @Accept json
// @Produce json
// @Param recordID path string true "Record ID"
// @Param request body dto.AttachDocumentsRequest true "Documents to attach"
// @Success 200 {object} dto.CustomerResponse "Documents attached"
// @Failure 422 {object} dto.ErrorResponse "Document category cap exceeded"
// @Router /customers/{recordID}/documents [post]
// @Security BearerAuth
func (h *CustomerHandler) AttachDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.AttachDocumentsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	docs := make([]customer.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, d.ToDomain())
	}
	updated, err := h.service.AttachDocuments(r.Context(), id, docs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated, updated.IsMaturedDisplay(time.Now())))
}

// PreviewDerivation handles POST /customers/derivation-preview
// @Summary Preview the derived loan figures
// @Description Recomputes installment, maturity, net disbursed, DBR and the advisory fee defaults for the given terms without saving anything.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.DerivationPreviewRequest true "Loan terms"
// @Success 200 {object} dto.DerivationPreviewResponse "Derived figures"
// @Router /customers/derivation-preview [post]
// @Security BearerAuth
func (h *CustomerHandler) PreviewDerivation(w http.ResponseWriter, r *http.Request) {
	var req dto.DerivationPreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	nom, err := req.ToDomain()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	preview := h.service.PreviewDerivation(r.Context(), nom, req.PreviousPrincipal, req.PensionSalary)
	respondJSON(w, http.StatusOK, dto.NewDerivationPreviewResponse(&preview))
}

// PreviewTopUp handles GET /customers/{recordID}/topup-preview
// @Summary Preview a top-up draft
// @Description Returns the payoff estimate and the provisional replacement record for an active loan. Nothing is persisted.
// @Tags Customers
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} dto.TopUpPreviewResponse "Top-up draft"
// @Failure 409 {object} dto.ErrorResponse "Record is not active"
// @Router /customers/{recordID}/topup-preview [get]
// @Security BearerAuth
func (h *CustomerHandler) PreviewTopUp(w http.ResponseWriter, r *http.Request) {
	id, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	draft, estimate, err := h.service.PreviewTopUp(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.TopUpPreviewResponse{
		Draft:           dto.NewCustomerResponse(draft, false),
		MonthsElapsed:   estimate.MonthsElapsed,
		MonthsRemaining: estimate.MonthsRemaining,
		EstimatedPayoff: estimate.EstimatedPayoff,
	})
}

// SuggestSettlement handles GET /customers/{recordID}/settlement-suggestion
// @Summary Suggest a PKA settlement amount
// @Tags Customers
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} dto.SuggestSettlementResponse "Suggested amount"
// @Router /customers/{recordID}/settlement-suggestion [get]
// @Security BearerAuth
func (h *CustomerHandler) SuggestSettlement(w http.ResponseWriter, r *http.Request) {
	id, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	amount, err := h.service.SuggestSettlement(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.SuggestSettlementResponse{SuggestedAmount: amount})
}

// ResolveCustomer handles POST /customers/{recordID}/resolution
// @Summary Resolve an active loan
// @Description Moves an active record into PKA, Settled, SettledViaTopUp, Cancelled or Deceased.
// @Tags Customers
// @Accept json
// @Produce json
// @Param recordID path string true "Record ID"
// @Param request body dto.ResolutionRequest true "Resolution"
// @Success 200 {object} dto.CustomerResponse "Record resolved"
// @Failure 409 {object} dto.ErrorResponse "Record is not active"
// @Router /customers/{recordID}/resolution [post]
// @Security BearerAuth
func (h *CustomerHandler) ResolveCustomer(w http.ResponseWriter, r *http.Request) {
	h.applyResolution(w, r, h.service.ResolveCustomer)
}

// AmendResolution handles PUT /customers/{recordID}/resolution
// @Summary Amend an existing resolution
// @Tags Customers
// @Accept json
// @Produce json
// @Param recordID path string true "Record ID"
// @Param request body dto.ResolutionRequest true "Corrected resolution"
// @Success 200 {object} dto.CustomerResponse "Resolution amended"
// @Failure 409 {object} dto.ErrorResponse "Record has no resolution"
// @Router /customers/{recordID}/resolution [put]
// @Security BearerAuth
func (h *CustomerHandler) AmendResolution(w http.ResponseWriter, r *http.Request) {
	h.applyResolution(w, r, h.service.AmendResolution)
}

func (h *CustomerHandler) applyResolution(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, id string, res customer.Resolution) (*customer.Customer, error)) {

	id, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.ResolutionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	res, err := req.ToDomain()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	updated, err := apply(r.Context(), id, res)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated, false))
}

// RevertResolution handles DELETE /customers/{recordID}/resolution
// @Summary Revert a resolution
// @Description Returns a resolved record to Active and drops the lifecycle-owned document categories.
// @Tags Customers
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} dto.CustomerResponse "Record reverted to active"
// @Failure 409 {object} dto.ErrorResponse "Record has no resolution"
// @Router /customers/{recordID}/resolution [delete]
// @Security BearerAuth
func (h *CustomerHandler) RevertResolution(w http.ResponseWriter, r *http.Request) {
	id, err := getRecordIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	updated, err := h.service.RevertResolution(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated, updated.IsMaturedDisplay(time.Now())))
}

// ExtractFields handles POST /customers/extract
// @Summary Extract record fields from free text
// @Description Sends the text to the extraction collaborator and returns a partial record for the user to review.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.ExtractFieldsRequest true "Free text"
// @Success 200 {object} customer.ExtractedFields "Extracted fields"
// @Failure 503 {object} dto.ErrorResponse "Extraction not configured"
// @Router /customers/extract [post]
// @Security BearerAuth
func (h *CustomerHandler) ExtractFields(w http.ResponseWriter, r *http.Request) {
	var req dto.ExtractFieldsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	fields, err := h.service.ExtractFields(r.Context(), req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fields)
}
