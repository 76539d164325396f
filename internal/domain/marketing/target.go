package marketing

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"lending-desk/internal/pkg/apperrors"
)

// WeekRanges are the fixed day-of-month buckets a target month is
// reported in. The fifth bucket absorbs whatever days 29-31 the month
// actually has.
var WeekRanges = [5][2]int{
	{1, 7},
	{8, 14},
	{15, 21},
	{22, 28},
	{29, 31},
}

// Target is one marketing officer's disbursement goal for one calendar
// month. Realization is entered per day of month; totals and attainment
// are always derived, never stored.
type Target struct {
	ID            string `json:"id"`
	MarketingName string `json:"marketingName"`
	Branch        string `json:"branch"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`

	// NOAGoal is the number-of-accounts goal: how many loans the
	// officer is expected to book this month.
	NOAGoal int `json:"noaGoal"`

	TargetAmount     decimal.Decimal            `json:"targetAmount"`
	DailyRealization map[string]decimal.Decimal `json:"dailyRealization"`

	CreatedAt time.Time `json:"createdAt"`
}

// SetDailyRealization records the disbursed amount for one day of the
// target month. Day is the day of month, 1 to 31.
func (t *Target) SetDailyRealization(day int, amount decimal.Decimal) error {
	if day < 1 || day > 31 {
		return apperrors.NewValidationError("day", "day of month must be between 1 and 31")
	}
	if amount.IsNegative() {
		return apperrors.NewValidationError("amount", "realization cannot be negative")
	}
	if t.DailyRealization == nil {
		t.DailyRealization = make(map[string]decimal.Decimal)
	}
	t.DailyRealization[strconv.Itoa(day)] = amount
	return nil
}

// WeekTotals sums the daily realization into the five fixed buckets.
func (t *Target) WeekTotals() [5]decimal.Decimal {
	var totals [5]decimal.Decimal
	for i, r := range WeekRanges {
		sum := decimal.Zero
		for day := r[0]; day <= r[1]; day++ {
			if v, ok := t.DailyRealization[strconv.Itoa(day)]; ok {
				sum = sum.Add(v)
			}
		}
		totals[i] = sum
	}
	return totals
}

// TotalRealization is the month-to-date sum over all entered days.
func (t *Target) TotalRealization() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range t.DailyRealization {
		sum = sum.Add(v)
	}
	return sum
}

// Attainment is realization over target as a percentage. A zero target
// reports zero rather than dividing.
func (t *Target) Attainment() decimal.Decimal {
	if t.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return t.TotalRealization().Div(t.TargetAmount).Mul(decimal.NewFromInt(100))
}
