package customer

import (
	"math"
	"time"
)

// Advisory fee defaults applied when the principal changes, as fractions
// of the principal. Users may override any of them afterwards.
const (
	DefaultAdminFeeRate     = 0.075
	DefaultProvisionFeeRate = 0.025
	DefaultMarketingFeeRate = 0.05
	DefaultRiskReserveRate  = 0.11

	DefaultPrincipalSavings = 20_000.0
	DefaultMandatorySavings = 100_000.0
)

// DBRHighThreshold is the debt-burden-ratio percentage above which a
// loan is flagged as high. Advisory only; it never blocks saving.
const DBRHighThreshold = 98.0

// SuggestedSettlementRate backs the pre-filled PKA settlement amount.
// It is a placeholder with no actuarial basis; callers always supply
// the final figure explicitly.
const SuggestedSettlementRate = 0.5

// sanitize coerces invalid numeric input to 0 so downstream arithmetic
// never propagates NaN or infinities.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MonthlyInstallment computes the per-month payment for the given terms,
// rounded to the nearest whole currency unit. The annuity regime reads
// rate as an annual percentage amortized monthly; the flat regime reads
// it as a monthly percentage of the original principal. Zero tenure
// yields 0 rather than a division error.
func MonthlyInstallment(principal Money, rate float64, regime InterestType, tenureMonths int) Money {
	principal = sanitize(principal)
	rate = sanitize(rate)
	if principal <= 0 || tenureMonths <= 0 {
		return 0
	}

	months := float64(tenureMonths)
	var installment float64
	if regime == InterestFlat {
		monthlyRate := rate / 100
		installment = principal/months + principal*monthlyRate
	} else {
		monthlyRate := rate / 100 / 12
		if monthlyRate == 0 {
			installment = principal / months
		} else {
			installment = principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -months))
		}
	}
	return math.Round(sanitize(installment))
}

// EquivalentFlatRate converts an annuity installment into the monthly
// flat percentage that would produce the same total interest. Purely
// informational.
func EquivalentFlatRate(installment, principal Money, tenureMonths int) float64 {
	installment = sanitize(installment)
	principal = sanitize(principal)
	if principal <= 0 || tenureMonths <= 0 {
		return 0
	}
	months := float64(tenureMonths)
	totalInterest := installment*months - principal
	return sanitize(totalInterest / months / principal * 100)
}

// MaturityDate is the scheduled payoff date: disbursement plus the
// tenure in calendar months, with the host date library's usual
// end-of-month rollover.
func MaturityDate(disbursement time.Time, tenureMonths int) time.Time {
	if disbursement.IsZero() || tenureMonths <= 0 {
		return time.Time{}
	}
	return disbursement.AddDate(0, tenureMonths, 0)
}

// WholeMonthsBetween counts fully elapsed calendar months from a to b,
// treating a partial month (b's day-of-month before a's) as not yet
// elapsed. Never negative.
func WholeMonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// TotalMonthlyPayment is what the customer actually pays each month:
// the loan installment plus the mandatory cooperative savings.
func (n *NominativeData) TotalMonthlyPayment() Money {
	return sanitize(n.MonthlyInstallment) + sanitize(n.MandatorySavings)
}

// NetDisbursed is the amount handed to the customer after every
// deduction. It is never stored; this formula is the single source of
// truth wherever the figure is shown or exported.
func (n *NominativeData) NetDisbursed() Money {
	upfrontDeductions := sanitize(n.RiskReserve) + sanitize(n.AdminFee) + sanitize(n.ProvisionFee) + sanitize(n.PrincipalSavings)
	prepaidInstallments := float64(n.BlockedInstallmentCount) * n.TotalMonthlyPayment()
	otherAllocations := sanitize(n.BlockedAmountSK) + sanitize(n.FlaggingFee) + sanitize(n.RepaymentAmount)
	return sanitize(n.LoanAmount) - upfrontDeductions - prepaidInstallments - otherAllocations - sanitize(n.MarketingFee)
}

// DebtBurdenRatio is the installment as a percentage of the monthly
// pension salary. Zero salary short-circuits to 0.
func DebtBurdenRatio(installment, pensionSalary Money) float64 {
	installment = sanitize(installment)
	pensionSalary = sanitize(pensionSalary)
	if pensionSalary <= 0 {
		return 0
	}
	return installment / pensionSalary * 100
}

func IsDBRHigh(installment, pensionSalary Money) bool {
	return DebtBurdenRatio(installment, pensionSalary) > DBRHighThreshold
}

// ApplyFeeDefaults populates the fee and savings fields with their
// advisory defaults. It fires only when the principal actually differs
// from previousPrincipal, so a user's manual fee edits survive unrelated
// recomputations. Reports whether defaults were applied.
func (n *NominativeData) ApplyFeeDefaults(previousPrincipal Money) bool {
	if n.LoanAmount == previousPrincipal {
		return false
	}
	if n.LoanAmount <= 0 {
		n.AdminFee = 0
		n.ProvisionFee = 0
		n.MarketingFee = 0
		n.RiskReserve = 0
		n.PrincipalSavings = 0
		n.MandatorySavings = 0
		return true
	}
	n.AdminFee = n.LoanAmount * DefaultAdminFeeRate
	n.ProvisionFee = n.LoanAmount * DefaultProvisionFeeRate
	n.MarketingFee = n.LoanAmount * DefaultMarketingFeeRate
	n.RiskReserve = n.LoanAmount * DefaultRiskReserveRate
	n.PrincipalSavings = DefaultPrincipalSavings
	n.MandatorySavings = DefaultMandatorySavings
	return true
}

// Recalculate refreshes the derived fields from the current inputs.
// Called on every save and on every relevant field change.
func (n *NominativeData) Recalculate() {
	n.MonthlyInstallment = MonthlyInstallment(n.LoanAmount, n.InterestRate, n.InterestType, n.TenureMonths)
	n.MaturityDate = MaturityDate(n.DisbursementDate, n.TenureMonths)
}

// SuggestedSettlementAmount pre-fills the PKA settlement figure at half
// the principal. Placeholder only, not an actuarial payoff.
func SuggestedSettlementAmount(principal Money) Money {
	principal = sanitize(principal)
	if principal <= 0 {
		return 0
	}
	return principal * SuggestedSettlementRate
}
