package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"lending-desk/internal/api/handler/dto"
	"lending-desk/internal/domain/marketing"
	"lending-desk/internal/pkg/apperrors"
)

type MarketingHandler struct {
	service marketing.TargetService
	logger  *slog.Logger
}

func NewMarketingHandler(s marketing.TargetService, l *slog.Logger) *MarketingHandler {
	if s == nil {
		panic("marketing service cannot be nil")
	}
	return &MarketingHandler{
		service: s,
		logger:  l.With("component", "MarketingHandler"),
	}
}

func getTargetIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "targetID")
	if id == "" {
		return "", fmt.Errorf("%w: targetID not found in URL path", apperrors.ErrInvalidArgument)
	}
	return id, nil
}

// SaveTarget handles POST /marketing/targets
// @Summary Create or replace a marketing target
// @Tags Marketing
// @Accept json
// @Produce json
// @Param request body dto.SaveTargetRequest true "Target"
// @Success 200 {object} dto.TargetResponse "Target saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Router /marketing/targets [post]
// @Security BearerAuth
func (h *MarketingHandler) SaveTarget(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveTargetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	target, err := req.ToDomain()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	saved, err := h.service.SaveTarget(r.Context(), target)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to save target", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewTargetResponse(saved))
}

// ListTargets handles GET /marketing/targets
// @Summary List marketing targets
// @Tags Marketing
// @Produce json
// @Success 200 {array} dto.TargetResponse "Targets listed"
// @Router /marketing/targets [get]
// @Security BearerAuth
func (h *MarketingHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.service.ListTargets(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]dto.TargetResponse, 0, len(targets))
	for i := range targets {
		resp = append(resp, dto.NewTargetResponse(&targets[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetTarget handles GET /marketing/targets/{targetID}
// @Summary Retrieve a marketing target
// @Tags Marketing
// @Produce json
// @Param targetID path string true "Target ID"
// @Success 200 {object} dto.TargetResponse "Target retrieved"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Router /marketing/targets/{targetID} [get]
// @Security BearerAuth
func (h *MarketingHandler) GetTarget(w http.ResponseWriter, r *http.Request) {
	id, err := getTargetIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	target, err := h.service.GetTarget(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewTargetResponse(target))
}

// DeleteTarget handles DELETE /marketing/targets/{targetID}
// @Summary Delete a marketing target
// @Tags Marketing
// @Param targetID path string true "Target ID"
// @Success 204 "Target deleted"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Router /marketing/targets/{targetID} [delete]
// @Security BearerAuth
func (h *MarketingHandler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	id, err := getTargetIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.DeleteTarget(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordRealization handles PUT /marketing/targets/{targetID}/realization
// @Summary Record one day's realization
// @Tags Marketing
// @Accept json
// @Produce json
// @Param targetID path string true "Target ID"
// @Param request body dto.RealizationRequest true "Day and amount"
// @Success 200 {object} dto.TargetResponse "Realization recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid day or amount"
// @Router /marketing/targets/{targetID}/realization [put]
// @Security BearerAuth
func (h *MarketingHandler) RecordRealization(w http.ResponseWriter, r *http.Request) {
	id, err := getTargetIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.RealizationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	amount, _ := decimal.NewFromString(req.Amount)
	updated, err := h.service.RecordRealization(r.Context(), id, req.Day, amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewTargetResponse(updated))
}

// Summaries handles GET /marketing/summaries?year=&month=
// @Summary Report targets with derived totals
// @Description Lists targets for the given month with week-bucket totals and attainment. Omitting year and month reports everything.
// @Tags Marketing
// @Produce json
// @Param year query int false "Year filter"
// @Param month query int false "Month filter (1-12)"
// @Success 200 {array} dto.TargetSummaryResponse "Summaries"
// @Router /marketing/summaries [get]
// @Security BearerAuth
func (h *MarketingHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	summaries, err := h.service.Summaries(r.Context(), year, month)
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]dto.TargetSummaryResponse, 0, len(summaries))
	for i := range summaries {
		resp = append(resp, dto.NewTargetSummaryResponse(&summaries[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}
