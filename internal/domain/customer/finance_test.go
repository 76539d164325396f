package customer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lending-desk/internal/domain/customer"
)

func TestMonthlyInstallment_Annuity(t *testing.T) {
	principal := 50_000_000.0
	rate := 35.0
	tenure := 24

	installment := customer.MonthlyInstallment(principal, rate, customer.InterestAnnuity, tenure)

	// The installment must amortize the balance to zero at the monthly
	// compounded rate, within the rounding the whole-unit result allows.
	monthlyRate := rate / 100 / 12
	balance := principal
	for i := 0; i < tenure; i++ {
		balance = balance*(1+monthlyRate) - installment
	}
	assert.InDelta(t, 0, balance, 100)
	assert.Greater(t, installment, principal/float64(tenure), "annuity installment must exceed pure principal amortization")
}

func TestMonthlyInstallment_AnnuityZeroRate(t *testing.T) {
	installment := customer.MonthlyInstallment(12_000_000, 0, customer.InterestAnnuity, 12)
	assert.Equal(t, 1_000_000.0, installment)
}

func TestMonthlyInstallment_Flat(t *testing.T) {
	// 10M at 2% flat per month over 12 months: 833,333.33 principal
	// portion plus 200,000 interest, rounded to the whole unit.
	installment := customer.MonthlyInstallment(10_000_000, 2, customer.InterestFlat, 12)
	assert.Equal(t, 1_033_333.0, installment)
}

func TestMonthlyInstallment_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, customer.MonthlyInstallment(0, 10, customer.InterestAnnuity, 12))
	assert.Equal(t, 0.0, customer.MonthlyInstallment(10_000_000, 10, customer.InterestAnnuity, 0))
	assert.Equal(t, 0.0, customer.MonthlyInstallment(-5, 10, customer.InterestFlat, 12))
}

func TestEquivalentFlatRate(t *testing.T) {
	// Flat terms round-trip exactly: the equivalent flat rate of a flat
	// installment is the flat rate itself (modulo installment rounding).
	principal := 10_000_000.0
	installment := customer.MonthlyInstallment(principal, 2, customer.InterestFlat, 12)
	got := customer.EquivalentFlatRate(installment, principal, 12)
	assert.InDelta(t, 2.0, got, 0.001)

	assert.Equal(t, 0.0, customer.EquivalentFlatRate(1_000_000, 0, 12))
	assert.Equal(t, 0.0, customer.EquivalentFlatRate(1_000_000, 10_000_000, 0))
}

func TestMaturityDate(t *testing.T) {
	disbursed := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		customer.MaturityDate(disbursed, 24))

	assert.True(t, customer.MaturityDate(time.Time{}, 24).IsZero())
	assert.True(t, customer.MaturityDate(disbursed, 0).IsZero())
}

func TestMaturityDate_TenureRoundTrip(t *testing.T) {
	// Re-deriving the tenure from the disbursement and maturity dates
	// returns the original tenure, for any day of month that exists in
	// every month.
	for tenure := 1; tenure <= 360; tenure++ {
		for day := 1; day <= 28; day++ {
			disbursed := time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
			maturity := customer.MaturityDate(disbursed, tenure)
			if got := customer.WholeMonthsBetween(disbursed, maturity); got != tenure {
				t.Fatalf("tenure %d disbursed on day %d round-tripped to %d", tenure, day, got)
			}
		}
	}
}

func TestWholeMonthsBetween(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, customer.WholeMonthsBetween(start, start))
	assert.Equal(t, 1, customer.WholeMonthsBetween(start, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)))
	// Partial month: day-of-month not yet reached.
	assert.Equal(t, 0, customer.WholeMonthsBetween(start, time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 12, customer.WholeMonthsBetween(start, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)))
	// Never negative.
	assert.Equal(t, 0, customer.WholeMonthsBetween(start, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNetDisbursed(t *testing.T) {
	n := customer.NominativeData{
		LoanAmount:              50_000_000,
		RiskReserve:             5_500_000,
		AdminFee:                3_750_000,
		ProvisionFee:            1_250_000,
		PrincipalSavings:        20_000,
		MonthlyInstallment:      2_900_000,
		MandatorySavings:        100_000,
		BlockedInstallmentCount: 2,
		BlockedAmountSK:         500_000,
		FlaggingFee:             50_000,
		RepaymentAmount:         1_000_000,
		MarketingFee:            2_500_000,
	}
	// 50M - (5.5M+3.75M+1.25M+20k) - 2*(2.9M+100k) - (500k+50k+1M) - 2.5M
	expected := 50_000_000.0 - 10_520_000 - 6_000_000 - 1_550_000 - 2_500_000
	assert.Equal(t, expected, n.NetDisbursed())
}

func TestNetDisbursed_EachDeductionLowersIt(t *testing.T) {
	base := customer.NominativeData{LoanAmount: 50_000_000}
	baseline := base.NetDisbursed()
	assert.Equal(t, 50_000_000.0, baseline)

	mutations := []func(*customer.NominativeData){
		func(n *customer.NominativeData) { n.RiskReserve = 1 },
		func(n *customer.NominativeData) { n.AdminFee = 1 },
		func(n *customer.NominativeData) { n.ProvisionFee = 1 },
		func(n *customer.NominativeData) { n.PrincipalSavings = 1 },
		func(n *customer.NominativeData) { n.BlockedAmountSK = 1 },
		func(n *customer.NominativeData) { n.FlaggingFee = 1 },
		func(n *customer.NominativeData) { n.RepaymentAmount = 1 },
		func(n *customer.NominativeData) { n.MarketingFee = 1 },
	}
	for _, mutate := range mutations {
		n := base
		mutate(&n)
		assert.Less(t, n.NetDisbursed(), baseline)
	}
}

func TestTotalMonthlyPayment(t *testing.T) {
	n := customer.NominativeData{MonthlyInstallment: 2_900_000, MandatorySavings: 100_000}
	assert.Equal(t, 3_000_000.0, n.TotalMonthlyPayment())
}

func TestDebtBurdenRatio(t *testing.T) {
	assert.Equal(t, 50.0, customer.DebtBurdenRatio(2_000_000, 4_000_000))
	assert.Equal(t, 0.0, customer.DebtBurdenRatio(2_000_000, 0))

	assert.False(t, customer.IsDBRHigh(3_920_000, 4_000_000)) // exactly 98%
	assert.True(t, customer.IsDBRHigh(3_920_001, 4_000_000))
}

func TestApplyFeeDefaults(t *testing.T) {
	n := customer.NominativeData{LoanAmount: 40_000_000}

	applied := n.ApplyFeeDefaults(0)
	assert.True(t, applied)
	assert.Equal(t, 3_000_000.0, n.AdminFee)
	assert.Equal(t, 1_000_000.0, n.ProvisionFee)
	assert.Equal(t, 2_000_000.0, n.MarketingFee)
	assert.Equal(t, 4_400_000.0, n.RiskReserve)
	assert.Equal(t, 20_000.0, n.PrincipalSavings)
	assert.Equal(t, 100_000.0, n.MandatorySavings)
}

func TestApplyFeeDefaults_GuardPreservesManualEdits(t *testing.T) {
	n := customer.NominativeData{LoanAmount: 40_000_000}
	n.ApplyFeeDefaults(0)

	// Manual fee override survives a recomputation with the same principal.
	n.AdminFee = 1_234_567
	applied := n.ApplyFeeDefaults(40_000_000)
	assert.False(t, applied)
	assert.Equal(t, 1_234_567.0, n.AdminFee)

	// A principal change re-applies the defaults.
	n.LoanAmount = 60_000_000
	applied = n.ApplyFeeDefaults(40_000_000)
	assert.True(t, applied)
	assert.Equal(t, 4_500_000.0, n.AdminFee)
}

func TestApplyFeeDefaults_ZeroPrincipalClearsFees(t *testing.T) {
	n := customer.NominativeData{LoanAmount: 40_000_000}
	n.ApplyFeeDefaults(0)

	n.LoanAmount = 0
	applied := n.ApplyFeeDefaults(40_000_000)
	assert.True(t, applied)
	assert.Zero(t, n.AdminFee)
	assert.Zero(t, n.ProvisionFee)
	assert.Zero(t, n.MarketingFee)
	assert.Zero(t, n.RiskReserve)
	assert.Zero(t, n.PrincipalSavings)
	assert.Zero(t, n.MandatorySavings)
}

func TestRecalculate(t *testing.T) {
	n := customer.NominativeData{
		LoanAmount:       10_000_000,
		InterestRate:     2,
		InterestType:     customer.InterestFlat,
		TenureMonths:     12,
		DisbursementDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	n.Recalculate()
	assert.Equal(t, 1_033_333.0, n.MonthlyInstallment)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), n.MaturityDate)
}

func TestSuggestedSettlementAmount(t *testing.T) {
	assert.Equal(t, 25_000_000.0, customer.SuggestedSettlementAmount(50_000_000))
	assert.Equal(t, 0.0, customer.SuggestedSettlementAmount(0))
	assert.Equal(t, 0.0, customer.SuggestedSettlementAmount(-10))
}
