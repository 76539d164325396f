package customer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lending-desk/internal/domain/customer"
)

func TestEstimateTopUp(t *testing.T) {
	n := customer.NominativeData{
		LoanDate:           time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		TenureMonths:       36,
		MonthlyInstallment: 2_000_000,
	}
	now := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	est := customer.EstimateTopUp(n, now)
	assert.Equal(t, 12, est.MonthsElapsed)
	assert.Equal(t, 24, est.MonthsRemaining)
	assert.Equal(t, 48_000_000.0, est.EstimatedPayoff)
}

func TestEstimateTopUp_ZeroLoanDate(t *testing.T) {
	n := customer.NominativeData{TenureMonths: 12, MonthlyInstallment: 1_000_000}
	est := customer.EstimateTopUp(n, time.Now())
	assert.Equal(t, 0, est.MonthsElapsed)
	assert.Equal(t, 12, est.MonthsRemaining)
	assert.Equal(t, 12_000_000.0, est.EstimatedPayoff)
}

func TestEstimateTopUp_PastMaturityClampsToZero(t *testing.T) {
	n := customer.NominativeData{
		LoanDate:           time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		TenureMonths:       12,
		MonthlyInstallment: 1_000_000,
	}
	est := customer.EstimateTopUp(n, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, est.MonthsRemaining)
	assert.Zero(t, est.EstimatedPayoff)
}

func TestTopUpDraft(t *testing.T) {
	c := activeCustomer()
	c.Nominative = customer.NominativeData{
		LoanType:           customer.LoanNew,
		LoanDate:           time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		DisbursementDate:   time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
		SPKCode:            "SPK/2024/051",
		LoanAmount:         50_000_000,
		TenureMonths:       36,
		MonthlyInstallment: 2_100_000,
		AdminFee:           3_750_000,
		ProvisionFee:       1_250_000,
		MarketingFee:       2_500_000,
		RiskReserve:        5_500_000,
		FlaggingFee:        50_000,
		MaturityDate:       time.Date(2027, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, time.May, 10, 14, 30, 0, 0, time.UTC)

	draft := c.TopUpDraft(now)

	// The original record is untouched.
	assert.Equal(t, customer.LoanNew, c.Nominative.LoanType)
	assert.Equal(t, "SPK/2024/051", c.Nominative.SPKCode)

	today := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, customer.LoanTopUp, draft.Nominative.LoanType)
	assert.Equal(t, today, draft.Nominative.LoanDate)
	assert.Equal(t, today, draft.Nominative.DisbursementDate)
	assert.Empty(t, draft.Nominative.SPKCode)
	assert.Equal(t, customer.RepaymentTopUp, draft.Nominative.RepaymentType)
	// 36 - 12 elapsed = 24 remaining installments of 2.1M.
	assert.Equal(t, 24*2_100_000.0, draft.Nominative.RepaymentAmount)
	assert.Zero(t, draft.Nominative.LoanAmount)
	assert.Zero(t, draft.Nominative.AdminFee)
	assert.Zero(t, draft.Nominative.ProvisionFee)
	assert.Zero(t, draft.Nominative.MarketingFee)
	assert.Zero(t, draft.Nominative.RiskReserve)
	assert.Zero(t, draft.Nominative.FlaggingFee)
	assert.True(t, draft.Nominative.MaturityDate.IsZero())
	assert.Equal(t, customer.StatusActive, draft.Status)
	assert.Equal(t, c.Personal.FullName, draft.Personal.FullName)
}
