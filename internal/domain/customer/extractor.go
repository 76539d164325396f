package customer

import (
	"context"
	"time"
)

// ExtractedFields is the best-effort partial record produced by the
// free-text extraction collaborator. Every field is optional; the
// result is merged into a draft for the user to review and is never
// authoritative.
type ExtractedFields struct {
	FullName      *string `json:"fullName,omitempty"`
	NIK           *string `json:"nik,omitempty"`
	BirthDate     *string `json:"birthDate,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	MaritalStatus *string `json:"maritalStatus,omitempty"`
	Address       *string `json:"address,omitempty"`
	PhoneNumber   *string `json:"phoneNumber,omitempty"`

	PensionNumber     *string  `json:"pensionNumber,omitempty"`
	FormerInstitution *string  `json:"formerInstitution,omitempty"`
	MutationOffice    *string  `json:"mutationOffice,omitempty"`
	PensionType       *string  `json:"pensionType,omitempty"`
	SKNumber          *string  `json:"skNumber,omitempty"`
	SKIssuanceDate    *string  `json:"skIssuanceDate,omitempty"`
	SalaryAmount      *float64 `json:"salaryAmount,omitempty"`

	LoanType     *string  `json:"loanType,omitempty"`
	LoanDate     *string  `json:"loanDate,omitempty"`
	LoanAmount   *float64 `json:"loanAmount,omitempty"`
	InterestType *string  `json:"interestType,omitempty"`
	InterestRate *float64 `json:"interestRate,omitempty"`
	TenureMonths *int     `json:"tenureMonths,omitempty"`

	AdminFee         *float64 `json:"adminFee,omitempty"`
	ProvisionFee     *float64 `json:"provisionFee,omitempty"`
	MarketingFee     *float64 `json:"marketingFee,omitempty"`
	RiskReserve      *float64 `json:"riskReserve,omitempty"`
	FlaggingFee      *float64 `json:"flaggingFee,omitempty"`
	PrincipalSavings *float64 `json:"principalSavings,omitempty"`
	MandatorySavings *float64 `json:"mandatorySavings,omitempty"`

	RepaymentType   *string  `json:"repaymentType,omitempty"`
	RepaymentAmount *float64 `json:"repaymentAmount,omitempty"`
}

// FieldExtractor is the boundary to the natural-language extraction
// collaborator. Implementations return whatever they could parse;
// callers treat the result as an untrusted suggestion.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (*ExtractedFields, error)
}

const dateLayout = "2006-01-02"

func parseDate(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setMoney(dst *Money, src *float64) {
	if src != nil {
		*dst = sanitize(*src)
	}
}

// ApplyTo merges the extracted fields into a record, overwriting only
// the fields the extractor produced. Unparseable dates are skipped.
func (e *ExtractedFields) ApplyTo(c *Customer) {
	setString(&c.Personal.FullName, e.FullName)
	setString(&c.Personal.NIK, e.NIK)
	if t, ok := parseDate(e.BirthDate); ok {
		c.Personal.BirthDate = t
	}
	if e.Gender != nil {
		c.Personal.Gender = Gender(*e.Gender)
	}
	if e.MaritalStatus != nil {
		c.Personal.MaritalStatus = MaritalStatus(*e.MaritalStatus)
	}
	setString(&c.Personal.Address, e.Address)
	setString(&c.Personal.PhoneNumber, e.PhoneNumber)

	setString(&c.Pension.PensionNumber, e.PensionNumber)
	setString(&c.Pension.FormerInstitution, e.FormerInstitution)
	setString(&c.Pension.MutationOffice, e.MutationOffice)
	if e.PensionType != nil {
		c.Pension.PensionType = PensionType(*e.PensionType)
	}
	setString(&c.Pension.SKNumber, e.SKNumber)
	if t, ok := parseDate(e.SKIssuanceDate); ok {
		c.Pension.SKIssuanceDate = t
	}
	setMoney(&c.Pension.SalaryAmount, e.SalaryAmount)

	if e.LoanType != nil {
		c.Nominative.LoanType = LoanType(*e.LoanType)
	}
	if t, ok := parseDate(e.LoanDate); ok {
		c.Nominative.LoanDate = t
	}
	setMoney(&c.Nominative.LoanAmount, e.LoanAmount)
	if e.InterestType != nil {
		c.Nominative.InterestType = InterestType(*e.InterestType)
	}
	if e.InterestRate != nil {
		c.Nominative.InterestRate = sanitize(*e.InterestRate)
	}
	if e.TenureMonths != nil && *e.TenureMonths >= 0 {
		c.Nominative.TenureMonths = *e.TenureMonths
	}
	setMoney(&c.Nominative.AdminFee, e.AdminFee)
	setMoney(&c.Nominative.ProvisionFee, e.ProvisionFee)
	setMoney(&c.Nominative.MarketingFee, e.MarketingFee)
	setMoney(&c.Nominative.RiskReserve, e.RiskReserve)
	setMoney(&c.Nominative.FlaggingFee, e.FlaggingFee)
	setMoney(&c.Nominative.PrincipalSavings, e.PrincipalSavings)
	setMoney(&c.Nominative.MandatorySavings, e.MandatorySavings)
	if e.RepaymentType != nil {
		c.Nominative.RepaymentType = RepaymentType(*e.RepaymentType)
	}
	setMoney(&c.Nominative.RepaymentAmount, e.RepaymentAmount)
}
