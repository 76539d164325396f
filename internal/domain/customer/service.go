package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"lending-desk/internal/event"
	"lending-desk/internal/infrastructure/monitoring"
	"lending-desk/internal/pkg/apperrors"
)

const recordKind = "customer"

// DerivationPreview is the full set of derived figures for one set of
// loan terms, computed without touching any stored record. The edit
// form calls this on every relevant field change.
type DerivationPreview struct {
	Nominative          NominativeData `json:"nominative"`
	NetDisbursed        Money          `json:"netDisbursed"`
	TotalMonthlyPayment Money          `json:"totalMonthlyPayment"`
	EquivalentFlatRate  float64        `json:"equivalentFlatRate"`
	DebtBurdenRatio     float64        `json:"debtBurdenRatio"`
	DBRHigh             bool           `json:"dbrHigh"`
	FeeDefaultsApplied  bool           `json:"feeDefaultsApplied"`
}

// ScratchCleaner removes per-record scratch state (draft, editing
// pointer) when the record itself goes away.
type ScratchCleaner interface {
	ClearRecordScratch(ctx context.Context, recordID string) error
}

type CustomerService interface {
	SaveCustomer(ctx context.Context, cust Customer) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	AttachDocuments(ctx context.Context, id string, docs []Document) (*Customer, error)

	PreviewDerivation(ctx context.Context, nom NominativeData, previousPrincipal, pensionSalary Money) DerivationPreview
	PreviewTopUp(ctx context.Context, id string) (*Customer, *TopUpEstimate, error)
	SuggestSettlement(ctx context.Context, id string) (Money, error)

	ResolveCustomer(ctx context.Context, id string, res Resolution) (*Customer, error)
	AmendResolution(ctx context.Context, id string, res Resolution) (*Customer, error)
	RevertResolution(ctx context.Context, id string) (*Customer, error)

	ExtractFields(ctx context.Context, text string) (*ExtractedFields, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo      Repository
	pub       event.EventPublisher
	extractor FieldExtractor
	scratch   ScratchCleaner
	logger    *slog.Logger
}

// NewCustomerService wires the record workflow. The publisher,
// extractor and scratch cleaner are all optional; a nil value disables
// that collaborator without failing the core flow.
func NewCustomerService(repo Repository, pub event.EventPublisher, extractor FieldExtractor, scratch ScratchCleaner, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	return &customerService{
		repo:      repo,
		pub:       pub,
		extractor: extractor,
		scratch:   scratch,
		logger:    logger.With(slog.String("component", "customerService")),
	}
}

func newRecordEventPayload(cust *Customer) event.RecordEventPayload {
	if cust == nil {
		return event.RecordEventPayload{}
	}
	return event.RecordEventPayload{
		RecordID:     cust.ID,
		FullName:     cust.Personal.FullName,
		Status:       string(cust.EffectiveStatus()),
		LoanAmount:   cust.Nominative.LoanAmount,
		NetDisbursed: cust.Nominative.NetDisbursed(),
		CreatedAt:    cust.CreatedAt,
	}
}

func (s *customerService) publishSaved(ctx context.Context, cust *Customer, created bool) {
	if s.pub == nil {
		return
	}
	ev := event.RecordSavedEvent{
		Timestamp: time.Now(),
		Created:   created,
		Payload:   newRecordEventPayload(cust),
	}
	if err := s.pub.PublishRecordSaved(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Record saved, but failed to publish event",
			slog.String("recordID", cust.ID), slog.Any("error", err))
	}
}

func (s *customerService) publishStatusChanged(ctx context.Context, cust *Customer, oldStatus Status) {
	if s.pub == nil {
		return
	}
	ev := event.StatusChangedEvent{
		Timestamp:        time.Now(),
		RecordID:         cust.ID,
		OldStatus:        string(oldStatus),
		NewStatus:        string(cust.EffectiveStatus()),
		ResolutionDate:   cust.ResolutionDate,
		ResolutionAmount: cust.ResolutionAmount,
	}
	if err := s.pub.PublishStatusChanged(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Status changed, but failed to publish event",
			slog.String("recordID", cust.ID), slog.Any("error", err))
	}
}

// validateDocumentCaps checks the per-category upload limits over the
// union of kept and incoming documents.
func validateDocumentCaps(docs []Document) error {
	counts := make(map[DocumentCategory]int)
	for _, d := range docs {
		counts[d.Category]++
		if limit := CategoryLimit(d.Category); counts[d.Category] > limit {
			return fmt.Errorf("%w: category %s allows at most %d documents", apperrors.ErrDocumentLimit, d.Category, limit)
		}
	}
	return nil
}

func (s *customerService) validate(cust *Customer) error {
	if strings.TrimSpace(cust.Personal.FullName) == "" {
		return apperrors.NewValidationError("fullName", "full name is required")
	}
	if cust.Nominative.TenureMonths < 0 {
		return apperrors.NewValidationError("tenureMonths", "tenure cannot be negative")
	}
	if cust.Nominative.LoanAmount < 0 {
		return apperrors.NewValidationError("loanAmount", "loan amount cannot be negative")
	}
	if cust.Nominative.InterestRate < 0 {
		return apperrors.NewValidationError("interestRate", "interest rate cannot be negative")
	}
	if cust.Status != "" && cust.Status != StatusActive && !isResolvedStatus(cust.Status) {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", cust.Status))
	}
	return validateDocumentCaps(cust.Documents)
}

// SaveCustomer validates, recomputes the derived loan fields and
// upserts the record. A record without an id is treated as new and
// receives its identity here.
func (s *customerService) SaveCustomer(ctx context.Context, cust Customer) (*Customer, error) {
	cust.Personal.FullName = strings.TrimSpace(cust.Personal.FullName)
	if err := s.validate(&cust); err != nil {
		s.logger.WarnContext(ctx, "Record validation failed", slog.Any("error", err))
		return nil, err
	}

	created := false
	if cust.ID == "" {
		cust.ID = uuid.NewString()
		cust.CreatedAt = time.Now()
		created = true
	} else if _, err := s.repo.GetByID(ctx, cust.ID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up record %s: %w", cust.ID, err)
		}
		// Client-assigned id, first sighting.
		created = true
		if cust.CreatedAt.IsZero() {
			cust.CreatedAt = time.Now()
		}
	}
	if cust.Status == "" {
		cust.Status = StatusActive
	}
	cust.Nominative.Recalculate()

	if err := s.repo.Upsert(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save record",
			slog.String("recordID", cust.ID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	monitoring.RecordRecordSaved(recordKind)
	s.logger.InfoContext(ctx, "Record saved",
		slog.String("recordID", cust.ID), slog.Bool("created", created))
	s.publishSaved(ctx, &cust, created)
	return &cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id", "record id is required")
	}
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("id", "record id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	monitoring.RecordRecordDeleted(recordKind)
	if s.scratch != nil {
		if err := s.scratch.ClearRecordScratch(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "Failed to clear scratch state for deleted record",
				slog.String("recordID", id), slog.Any("error", err))
		}
	}
	s.logger.InfoContext(ctx, "Record deleted", slog.String("recordID", id))
	if s.pub != nil {
		ev := event.RecordDeletedEvent{Timestamp: time.Now(), RecordID: id}
		if err := s.pub.PublishRecordDeleted(ctx, ev); err != nil {
			s.logger.ErrorContext(ctx, "Record deleted, but failed to publish event",
				slog.String("recordID", id), slog.Any("error", err))
		}
	}
	return nil
}

// AttachDocuments appends archive entries to a record, assigning ids to
// entries that arrive without one. Category caps apply to the combined
// archive, so an over-limit batch is rejected as a whole.
func (s *customerService) AttachDocuments(ctx context.Context, id string, docs []Document) (*Customer, error) {
	if len(docs) == 0 {
		return nil, apperrors.NewValidationError("documents", "at least one document is required")
	}
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *cust
	updated.Documents = append(append([]Document(nil), cust.Documents...), docs...)
	for i := range updated.Documents {
		if updated.Documents[i].ID == "" {
			updated.Documents[i].ID = uuid.NewString()
		}
	}
	if err := validateDocumentCaps(updated.Documents); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save record %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Documents attached",
		slog.String("recordID", id), slog.Int("count", len(docs)))
	s.publishSaved(ctx, &updated, false)
	return &updated, nil
}

// PreviewDerivation recomputes every derived figure for the given loan
// terms. Fee defaults are applied only when the principal moved away
// from previousPrincipal, so manual fee edits survive unrelated
// recomputations.
func (s *customerService) PreviewDerivation(_ context.Context, nom NominativeData, previousPrincipal, pensionSalary Money) DerivationPreview {
	applied := nom.ApplyFeeDefaults(previousPrincipal)
	nom.Recalculate()
	return DerivationPreview{
		Nominative:          nom,
		NetDisbursed:        nom.NetDisbursed(),
		TotalMonthlyPayment: nom.TotalMonthlyPayment(),
		EquivalentFlatRate:  EquivalentFlatRate(nom.MonthlyInstallment, nom.LoanAmount, nom.TenureMonths),
		DebtBurdenRatio:     DebtBurdenRatio(nom.MonthlyInstallment, pensionSalary),
		DBRHigh:             IsDBRHigh(nom.MonthlyInstallment, pensionSalary),
		FeeDefaultsApplied:  applied,
	}
}

// PreviewTopUp returns the provisional replacement record and the
// payoff estimate behind it. Nothing is persisted.
func (s *customerService) PreviewTopUp(ctx context.Context, id string) (*Customer, *TopUpEstimate, error) {
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !cust.IsActive() {
		return nil, nil, fmt.Errorf("%w: record %s is %s, only active loans can be topped up",
			apperrors.ErrIllegalTransition, id, cust.EffectiveStatus())
	}
	now := time.Now()
	estimate := EstimateTopUp(cust.Nominative, now)
	draft := cust.TopUpDraft(now)
	return &draft, &estimate, nil
}

func (s *customerService) SuggestSettlement(ctx context.Context, id string) (Money, error) {
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return SuggestedSettlementAmount(cust.Nominative.LoanAmount), nil
}

// ResolveCustomer moves an active record into a resolved state and
// persists the transition.
func (s *customerService) ResolveCustomer(ctx context.Context, id string, res Resolution) (*Customer, error) {
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := cust.EffectiveStatus()

	updated := *cust
	if err := updated.ApplyResolution(res); err != nil {
		s.logger.WarnContext(ctx, "Resolution rejected",
			slog.String("recordID", id), slog.String("target", string(res.Status)), slog.Any("error", err))
		return nil, err
	}
	if err := validateDocumentCaps(updated.Documents); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save record %s: %w", id, err)
	}

	monitoring.RecordStatusTransition(string(oldStatus), string(updated.Status))
	s.logger.InfoContext(ctx, "Record resolved",
		slog.String("recordID", id),
		slog.String("from", string(oldStatus)),
		slog.String("to", string(updated.Status)))
	s.publishStatusChanged(ctx, &updated, oldStatus)
	return &updated, nil
}

// AmendResolution corrects the resolution of an already-resolved
// record without passing through Active.
func (s *customerService) AmendResolution(ctx context.Context, id string, res Resolution) (*Customer, error) {
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := cust.EffectiveStatus()

	updated := *cust
	if err := updated.AmendResolution(res); err != nil {
		return nil, err
	}
	if err := validateDocumentCaps(updated.Documents); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save record %s: %w", id, err)
	}

	if oldStatus != updated.Status {
		monitoring.RecordStatusTransition(string(oldStatus), string(updated.Status))
	}
	s.logger.InfoContext(ctx, "Resolution amended",
		slog.String("recordID", id), slog.String("status", string(updated.Status)))
	s.publishStatusChanged(ctx, &updated, oldStatus)
	return &updated, nil
}

// RevertResolution returns a resolved record to Active, clearing the
// resolution fields and the lifecycle-owned document categories.
func (s *customerService) RevertResolution(ctx context.Context, id string) (*Customer, error) {
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := cust.EffectiveStatus()

	updated := *cust
	if err := updated.RevertToActive(); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save record %s: %w", id, err)
	}

	monitoring.RecordStatusTransition(string(oldStatus), string(StatusActive))
	s.logger.InfoContext(ctx, "Resolution reverted",
		slog.String("recordID", id), slog.String("from", string(oldStatus)))
	s.publishStatusChanged(ctx, &updated, oldStatus)
	return &updated, nil
}

// ExtractFields runs the free-text extraction collaborator. When none
// is configured the feature reports itself unavailable rather than
// failing the request pipeline.
func (s *customerService) ExtractFields(ctx context.Context, text string) (*ExtractedFields, error) {
	if s.extractor == nil {
		return nil, apperrors.ErrExtractionUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("text", "text is required")
	}
	fields, err := s.extractor.ExtractFields(ctx, text)
	if err != nil {
		monitoring.RecordExtraction("error")
		s.logger.ErrorContext(ctx, "Field extraction failed", slog.Any("error", err))
		return nil, fmt.Errorf("field extraction failed: %w", err)
	}
	monitoring.RecordExtraction("success")
	return fields, nil
}
