package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lending-desk/internal/domain/customer"
	"lending-desk/internal/domain/marketing"
	"lending-desk/internal/domain/report"
	"lending-desk/internal/infrastructure/export"
)

type ReportHandler struct {
	customers customer.CustomerService
	targets   marketing.TargetService
	logger    *slog.Logger
}

func NewReportHandler(customers customer.CustomerService, targets marketing.TargetService, l *slog.Logger) *ReportHandler {
	if customers == nil {
		panic("customer service cannot be nil")
	}
	return &ReportHandler{
		customers: customers,
		targets:   targets,
		logger:    l.With("component", "ReportHandler"),
	}
}

// Dashboard handles GET /reports/dashboard
// @Summary Portfolio dashboard
// @Description Aggregates the whole collection: headcounts by status and institution, gross and average principal, and disbursement activity this week, month and year.
// @Tags Reports
// @Produce json
// @Success 200 {object} report.Dashboard "Dashboard"
// @Router /reports/dashboard [get]
// @Security BearerAuth
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report.BuildDashboard(customers, time.Now()))
}

// Institutions handles GET /reports/institutions?activeOnly=true
// @Summary Headcount by paying institution
// @Tags Reports
// @Produce json
// @Param activeOnly query bool false "Count only active records"
// @Success 200 {object} map[string]int "Counts per institution bucket"
// @Router /reports/institutions [get]
// @Security BearerAuth
func (h *ReportHandler) Institutions(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	activeOnly := r.URL.Query().Get("activeOnly") == "true"
	respondJSON(w, http.StatusOK, report.CountByInstitution(customers, activeOnly))
}

// Export handles GET /reports/export
// @Summary Export the collection as an xlsx workbook
// @Description Streams a workbook with the master, nominative, archive, settled and marketing sheets.
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Workbook"
// @Router /reports/export [get]
// @Security BearerAuth
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	sheets := []report.Sheet{
		report.MasterSheet(customers),
		report.NominativeSheet(customers),
		report.ArchiveSheet(customers),
		report.SettledSheet(customers),
	}
	if h.targets != nil {
		summaries, err := h.targets.Summaries(r.Context(), 0, 0)
		if err != nil {
			h.logger.WarnContext(r.Context(), "Skipping marketing sheet", slog.Any("error", err))
		} else {
			sheets = append(sheets, report.MarketingSheet(summaries))
		}
	}

	filename := fmt.Sprintf("lending-desk-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := export.WriteWorkbook(w, sheets...); err != nil {
		// Headers are already out; all we can do is log.
		h.logger.ErrorContext(r.Context(), "Failed to stream workbook", slog.Any("error", err))
	}
}
