package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lending-desk/internal/infrastructure/repository"
	"lending-desk/internal/pkg/apperrors"
)

// ScratchHandler exposes the session scratch state: form drafts, the
// active tab and the editing pointer. Drafts are opaque JSON blobs.
type ScratchHandler struct {
	scratch *repository.ScratchStore
	logger  *slog.Logger
}

func NewScratchHandler(scratch *repository.ScratchStore, l *slog.Logger) *ScratchHandler {
	if scratch == nil {
		panic("scratch store cannot be nil")
	}
	return &ScratchHandler{
		scratch: scratch,
		logger:  l.With("component", "ScratchHandler"),
	}
}

type uiStateRequest struct {
	Value string `json:"value"`
}

// SaveDraft handles PUT /scratch/drafts/{recordID}
// @Summary Save a form draft
// @Description Stores the draft payload with a debounce; rapid saves collapse into one write.
// @Tags Scratch
// @Accept json
// @Param recordID path string true "Record ID"
// @Success 202 "Draft scheduled for persistence"
// @Failure 400 {object} dto.ErrorResponse "Payload is not valid JSON"
// @Router /scratch/drafts/{recordID} [put]
// @Security BearerAuth
func (h *ScratchHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	defer r.Body.Close()

	if err := h.scratch.SaveDraft(r.Context(), recordID, json.RawMessage(body)); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// LoadDraft handles GET /scratch/drafts/{recordID}
// @Summary Load a form draft
// @Tags Scratch
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 "Draft payload"
// @Failure 404 {object} dto.ErrorResponse "No draft stored"
// @Router /scratch/drafts/{recordID} [get]
// @Security BearerAuth
func (h *ScratchHandler) LoadDraft(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")
	draft, err := h.scratch.LoadDraft(r.Context(), recordID)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(draft)
}

// ClearDraft handles DELETE /scratch/drafts/{recordID}
// @Summary Discard a form draft
// @Tags Scratch
// @Param recordID path string true "Record ID"
// @Success 204 "Draft discarded"
// @Router /scratch/drafts/{recordID} [delete]
// @Security BearerAuth
func (h *ScratchHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")
	if err := h.scratch.ClearDraft(r.Context(), recordID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUIState handles GET /scratch/ui
// @Summary Read the session UI state
// @Tags Scratch
// @Produce json
// @Success 200 {object} map[string]string "Active tab and editing pointer"
// @Router /scratch/ui [get]
// @Security BearerAuth
func (h *ScratchHandler) GetUIState(w http.ResponseWriter, r *http.Request) {
	tab, err := h.scratch.ActiveTab(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	editing, err := h.scratch.EditingID(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"activeTab": tab,
		"editingId": editing,
	})
}

// SetActiveTab handles PUT /scratch/ui/active-tab
// @Summary Persist the active tab
// @Tags Scratch
// @Accept json
// @Success 204 "Tab stored"
// @Router /scratch/ui/active-tab [put]
// @Security BearerAuth
func (h *ScratchHandler) SetActiveTab(w http.ResponseWriter, r *http.Request) {
	var req uiStateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := h.scratch.SetActiveTab(r.Context(), req.Value); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetEditingID handles PUT /scratch/ui/editing-id
// @Summary Persist the editing pointer
// @Tags Scratch
// @Accept json
// @Success 204 "Pointer stored"
// @Router /scratch/ui/editing-id [put]
// @Security BearerAuth
func (h *ScratchHandler) SetEditingID(w http.ResponseWriter, r *http.Request) {
	var req uiStateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if req.Value == "" {
		if err := h.scratch.ClearEditingID(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.scratch.SetEditingID(r.Context(), req.Value); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
