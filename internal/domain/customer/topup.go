package customer

import "time"

// TopUpEstimate summarizes the early-payoff arithmetic for an existing
// loan: a simple remaining-installments sum, not a present-value figure.
type TopUpEstimate struct {
	MonthsElapsed   int   `json:"monthsElapsed"`
	MonthsRemaining int   `json:"monthsRemaining"`
	EstimatedPayoff Money `json:"estimatedPayoff"`
}

// EstimateTopUp computes the payoff estimate for the given loan terms as
// of now. Zero tenure or a zero installment yields a zero payoff; the
// user corrects the figure on the draft.
func EstimateTopUp(n NominativeData, now time.Time) TopUpEstimate {
	elapsed := 0
	if !n.LoanDate.IsZero() {
		elapsed = WholeMonthsBetween(n.LoanDate, now)
	}
	remaining := n.TenureMonths - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return TopUpEstimate{
		MonthsElapsed:   elapsed,
		MonthsRemaining: remaining,
		EstimatedPayoff: float64(remaining) * sanitize(n.MonthlyInstallment),
	}
}

// TopUpDraft builds the provisional replacement record for a top-up:
// same customer, a fresh TopUp loan dated today whose repayment field
// carries the estimated payoff of the current loan. The caller hands the
// draft to the edit form; nothing is persisted until the user submits.
func (c *Customer) TopUpDraft(now time.Time) Customer {
	estimate := EstimateTopUp(c.Nominative, now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	draft := *c
	draft.Status = StatusActive
	nom := c.Nominative
	nom.LoanType = LoanTopUp
	nom.LoanDate = today
	nom.DisbursementDate = today
	nom.SPKCode = ""
	nom.RepaymentType = RepaymentTopUp
	nom.RepaymentAmount = estimate.EstimatedPayoff
	nom.LoanAmount = 0
	nom.AdminFee = 0
	nom.ProvisionFee = 0
	nom.MarketingFee = 0
	nom.RiskReserve = 0
	nom.FlaggingFee = 0
	// Maturity is recomputed once the user enters the new principal.
	nom.MaturityDate = time.Time{}
	draft.Nominative = nom
	return draft
}
