package batch

import (
	"context"
	"log/slog"
	"time"

	"lending-desk/internal/domain/customer"
	"lending-desk/internal/domain/report"
	"lending-desk/internal/infrastructure/monitoring"
)

// PortfolioMetricsJob refreshes the portfolio gauges from the record
// collection on a schedule, so the exported metrics stay honest even
// when no traffic mutates the repository.
type PortfolioMetricsJob struct {
	service customer.CustomerService
	timeout time.Duration
	logger  *slog.Logger
}

func NewPortfolioMetricsJob(service customer.CustomerService, timeout time.Duration, logger *slog.Logger) *PortfolioMetricsJob {
	if service == nil {
		panic("customer service cannot be nil")
	}
	return &PortfolioMetricsJob{
		service: service,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "portfolioMetricsJob")),
	}
}

// Run satisfies cron.Job.
func (j *PortfolioMetricsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	started := time.Now()
	customers, err := j.service.ListCustomers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Portfolio refresh failed to list records", slog.Any("error", err))
		return
	}

	d := report.BuildDashboard(customers, time.Now())
	monitoring.SetPortfolioGauges(d.TotalCustomers, d.GrossPlafon, d.AveragePlafon)

	j.logger.InfoContext(ctx, "Portfolio gauges refreshed",
		slog.Int("customers", d.TotalCustomers),
		slog.Float64("grossPlafon", d.GrossPlafon),
		slog.Duration("took", time.Since(started)))
}
