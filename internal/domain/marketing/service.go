package marketing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lending-desk/internal/infrastructure/monitoring"
	"lending-desk/internal/pkg/apperrors"
)

const targetKind = "marketing_target"

// TargetSummary is the per-target report row: the stored fields plus
// the derived bucket totals and attainment.
type TargetSummary struct {
	Target           Target             `json:"target"`
	WeekTotals       [5]decimal.Decimal `json:"weekTotals"`
	TotalRealization decimal.Decimal    `json:"totalRealization"`
	Attainment       decimal.Decimal    `json:"attainment"`
}

type TargetService interface {
	SaveTarget(ctx context.Context, t Target) (*Target, error)
	GetTarget(ctx context.Context, id string) (*Target, error)
	ListTargets(ctx context.Context) ([]Target, error)
	DeleteTarget(ctx context.Context, id string) error

	RecordRealization(ctx context.Context, id string, day int, amount decimal.Decimal) (*Target, error)
	Summaries(ctx context.Context, year, month int) ([]TargetSummary, error)
}

var _ TargetService = (*targetService)(nil)

type targetService struct {
	repo   Repository
	logger *slog.Logger
}

func NewTargetService(repo Repository, logger *slog.Logger) TargetService {
	if repo == nil {
		panic("marketing repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &targetService{
		repo:   repo,
		logger: logger.With(slog.String("component", "targetService")),
	}
}

func (s *targetService) validate(t *Target) error {
	if strings.TrimSpace(t.MarketingName) == "" {
		return apperrors.NewValidationError("marketingName", "marketing name is required")
	}
	if t.Month < 1 || t.Month > 12 {
		return apperrors.NewValidationError("month", "month must be between 1 and 12")
	}
	if t.Year < 2000 {
		return apperrors.NewValidationError("year", "year is out of range")
	}
	if t.NOAGoal < 0 {
		return apperrors.NewValidationError("noaGoal", "account goal cannot be negative")
	}
	if t.TargetAmount.IsNegative() {
		return apperrors.NewValidationError("targetAmount", "target amount cannot be negative")
	}
	for day := range t.DailyRealization {
		d, err := parseDay(day)
		if err != nil || d < 1 || d > 31 {
			return apperrors.NewValidationError("dailyRealization", fmt.Sprintf("invalid day key %q", day))
		}
	}
	return nil
}

func parseDay(key string) (int, error) {
	var d int
	_, err := fmt.Sscanf(key, "%d", &d)
	return d, err
}

func (s *targetService) SaveTarget(ctx context.Context, t Target) (*Target, error) {
	t.MarketingName = strings.TrimSpace(t.MarketingName)
	t.Branch = strings.TrimSpace(t.Branch)
	if err := s.validate(&t); err != nil {
		s.logger.WarnContext(ctx, "Target validation failed", slog.Any("error", err))
		return nil, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
		t.CreatedAt = time.Now()
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save target",
			slog.String("targetID", t.ID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to save target: %w", err)
	}
	monitoring.RecordRecordSaved(targetKind)
	s.logger.InfoContext(ctx, "Target saved",
		slog.String("targetID", t.ID), slog.String("marketing", t.MarketingName))
	return &t, nil
}

func (s *targetService) GetTarget(ctx context.Context, id string) (*Target, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id", "target id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *targetService) ListTargets(ctx context.Context) ([]Target, error) {
	return s.repo.GetAll(ctx)
}

func (s *targetService) DeleteTarget(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("id", "target id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	monitoring.RecordRecordDeleted(targetKind)
	s.logger.InfoContext(ctx, "Target deleted", slog.String("targetID", id))
	return nil
}

// RecordRealization writes one day's disbursed amount into the target
// and persists it.
func (s *targetService) RecordRealization(ctx context.Context, id string, day int, amount decimal.Decimal) (*Target, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *t
	updated.DailyRealization = make(map[string]decimal.Decimal, len(t.DailyRealization)+1)
	for k, v := range t.DailyRealization {
		updated.DailyRealization[k] = v
	}
	if err := updated.SetDailyRealization(day, amount); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save target %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Realization recorded",
		slog.String("targetID", id), slog.Int("day", day), slog.String("amount", amount.String()))
	return &updated, nil
}

// Summaries reports every target for the given month with derived
// totals. Zero year and month means all targets.
func (s *targetService) Summaries(ctx context.Context, year, month int) ([]TargetSummary, error) {
	targets, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]TargetSummary, 0, len(targets))
	for _, t := range targets {
		if year != 0 && t.Year != year {
			continue
		}
		if month != 0 && t.Month != month {
			continue
		}
		summaries = append(summaries, TargetSummary{
			Target:           t,
			WeekTotals:       t.WeekTotals(),
			TotalRealization: t.TotalRealization(),
			Attainment:       t.Attainment(),
		})
	}
	return summaries, nil
}
