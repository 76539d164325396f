package dto

import (
	"fmt"
	"strings"

	"lending-desk/internal/domain/customer"
)

// Dates cross the wire as YYYY-MM-DD strings; an empty string is a zero
// date. Money fields are plain JSON numbers.

type PersonalInfoDTO struct {
	FullName      string `json:"fullName"`
	NIK           string `json:"nik,omitempty"`
	BirthDate     string `json:"birthDate,omitempty"`
	Gender        string `json:"gender,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
	Address       string `json:"address,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
}

type PensionDataDTO struct {
	PensionNumber     string  `json:"pensionNumber,omitempty"`
	FormerInstitution string  `json:"formerInstitution,omitempty"`
	MutationOffice    string  `json:"mutationOffice,omitempty"`
	PensionType       string  `json:"pensionType,omitempty"`
	SKNumber          string  `json:"skNumber,omitempty"`
	SKIssuanceDate    string  `json:"skIssuanceDate,omitempty"`
	SKReceivedDate    string  `json:"skReceivedDate,omitempty"`
	SKDescription     string  `json:"skDescription,omitempty"`
	SalaryAmount      float64 `json:"salaryAmount,omitempty"`
}

type NominativeDTO struct {
	LoanType           string  `json:"loanType,omitempty"`
	LoanDate           string  `json:"loanDate,omitempty"`
	SPKCode            string  `json:"spkCode,omitempty"`
	LoanAmount         float64 `json:"loanAmount,omitempty"`
	InterestType       string  `json:"interestType,omitempty"`
	InterestRate       float64 `json:"interestRate,omitempty"`
	TenureMonths       int     `json:"tenureMonths,omitempty"`
	MonthlyInstallment float64 `json:"monthlyInstallment,omitempty"`
	DisbursementDate   string  `json:"disbursementDate,omitempty"`
	MaturityDate       string  `json:"maturityDate,omitempty"`
	RepaymentNotes     string  `json:"repaymentNotes,omitempty"`

	AdminFee         float64 `json:"adminFee,omitempty"`
	ProvisionFee     float64 `json:"provisionFee,omitempty"`
	MarketingFee     float64 `json:"marketingFee,omitempty"`
	RiskReserve      float64 `json:"riskReserve,omitempty"`
	FlaggingFee      float64 `json:"flaggingFee,omitempty"`
	PrincipalSavings float64 `json:"principalSavings,omitempty"`
	MandatorySavings float64 `json:"mandatorySavings,omitempty"`

	RepaymentType   string  `json:"repaymentType,omitempty"`
	RepaymentAmount float64 `json:"repaymentAmount,omitempty"`

	BlockedAmountSK         float64 `json:"blockedAmountSK,omitempty"`
	BlockedInstallmentCount int     `json:"blockedInstallmentCount,omitempty"`
}

type DocumentDTO struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

func (d *DocumentDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("document name cannot be empty")
	}
	if strings.TrimSpace(d.Category) == "" {
		return fmt.Errorf("document category cannot be empty")
	}
	return nil
}

func (d *DocumentDTO) ToDomain() customer.Document {
	docType := customer.DocumentType(d.Type)
	if d.Type == "" {
		docType = customer.DocumentTypeFromMIME(d.MimeType)
	}
	return customer.Document{
		ID:       d.ID,
		Name:     d.Name,
		Type:     docType,
		Category: customer.DocumentCategory(d.Category),
		URL:      d.URL,
	}
}

func documentsToDomain(dtos []DocumentDTO) []customer.Document {
	if dtos == nil {
		return nil
	}
	docs := make([]customer.Document, 0, len(dtos))
	for _, d := range dtos {
		docs = append(docs, d.ToDomain())
	}
	return docs
}

type SaveCustomerRequest struct {
	ID            string          `json:"id,omitempty"`
	Personal      PersonalInfoDTO `json:"personal"`
	Pension       PensionDataDTO  `json:"pension"`
	Nominative    NominativeDTO   `json:"nominative"`
	Documents     []DocumentDTO   `json:"documents,omitempty"`
	MarketingName string          `json:"marketingName,omitempty"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
}

func (r *SaveCustomerRequest) Validate() error {
	if strings.TrimSpace(r.Personal.FullName) == "" {
		return fmt.Errorf("personal.fullName cannot be empty")
	}
	if r.Nominative.TenureMonths < 0 {
		return fmt.Errorf("nominative.tenureMonths cannot be negative")
	}
	if r.Nominative.LoanAmount < 0 {
		return fmt.Errorf("nominative.loanAmount cannot be negative")
	}
	for i := range r.Documents {
		if err := r.Documents[i].Validate(); err != nil {
			return fmt.Errorf("documents[%d]: %v", i, err)
		}
	}
	return nil
}

func (r *SaveCustomerRequest) ToDomain() (customer.Customer, error) {
	var c customer.Customer
	var err error

	c.ID = r.ID
	c.MarketingName = strings.TrimSpace(r.MarketingName)
	c.Status = customer.Status(r.Status)

	c.Personal = customer.PersonalInfo{
		FullName:      strings.TrimSpace(r.Personal.FullName),
		NIK:           r.Personal.NIK,
		Gender:        customer.Gender(r.Personal.Gender),
		MaritalStatus: customer.MaritalStatus(r.Personal.MaritalStatus),
		Address:       r.Personal.Address,
		PhoneNumber:   r.Personal.PhoneNumber,
	}
	if c.Personal.BirthDate, err = parseDate("personal.birthDate", r.Personal.BirthDate); err != nil {
		return c, err
	}

	c.Pension = customer.PensionData{
		PensionNumber:     r.Pension.PensionNumber,
		FormerInstitution: r.Pension.FormerInstitution,
		MutationOffice:    r.Pension.MutationOffice,
		PensionType:       customer.PensionType(r.Pension.PensionType),
		SKNumber:          r.Pension.SKNumber,
		SKDescription:     r.Pension.SKDescription,
		SalaryAmount:      r.Pension.SalaryAmount,
	}
	if c.Pension.SKIssuanceDate, err = parseDate("pension.skIssuanceDate", r.Pension.SKIssuanceDate); err != nil {
		return c, err
	}
	if c.Pension.SKReceivedDate, err = parseOptDate("pension.skReceivedDate", r.Pension.SKReceivedDate); err != nil {
		return c, err
	}

	c.Nominative = customer.NominativeData{
		LoanType:                customer.LoanType(r.Nominative.LoanType),
		SPKCode:                 r.Nominative.SPKCode,
		LoanAmount:              r.Nominative.LoanAmount,
		InterestType:            customer.InterestType(r.Nominative.InterestType),
		InterestRate:            r.Nominative.InterestRate,
		TenureMonths:            r.Nominative.TenureMonths,
		RepaymentNotes:          r.Nominative.RepaymentNotes,
		AdminFee:                r.Nominative.AdminFee,
		ProvisionFee:            r.Nominative.ProvisionFee,
		MarketingFee:            r.Nominative.MarketingFee,
		RiskReserve:             r.Nominative.RiskReserve,
		FlaggingFee:             r.Nominative.FlaggingFee,
		PrincipalSavings:        r.Nominative.PrincipalSavings,
		MandatorySavings:        r.Nominative.MandatorySavings,
		RepaymentType:           customer.RepaymentType(r.Nominative.RepaymentType),
		RepaymentAmount:         r.Nominative.RepaymentAmount,
		BlockedAmountSK:         r.Nominative.BlockedAmountSK,
		BlockedInstallmentCount: r.Nominative.BlockedInstallmentCount,
	}
	if c.Nominative.LoanDate, err = parseDate("nominative.loanDate", r.Nominative.LoanDate); err != nil {
		return c, err
	}
	if c.Nominative.DisbursementDate, err = parseDate("nominative.disbursementDate", r.Nominative.DisbursementDate); err != nil {
		return c, err
	}

	c.Documents = documentsToDomain(r.Documents)
	if c.CreatedAt, err = parseDate("createdAt", r.CreatedAt); err != nil {
		return c, err
	}
	return c, nil
}

// CustomerResponse carries the stored record plus every derived figure,
// recomputed at response time so clients never cache stale derivations.
type CustomerResponse struct {
	ID            string          `json:"id"`
	Personal      PersonalInfoDTO `json:"personal"`
	Pension       PensionDataDTO  `json:"pension"`
	Nominative    NominativeDTO   `json:"nominative"`
	Documents     []DocumentDTO   `json:"documents"`
	MarketingName string          `json:"marketingName,omitempty"`

	Status           string  `json:"status"`
	ResolutionDate   string  `json:"resolutionDate,omitempty"`
	ResolutionNotes  string  `json:"resolutionNotes,omitempty"`
	ResolutionAmount float64 `json:"resolutionAmount,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`

	NetDisbursed        float64 `json:"netDisbursed"`
	TotalMonthlyPayment float64 `json:"totalMonthlyPayment"`
	EquivalentFlatRate  float64 `json:"equivalentFlatRate"`
	DebtBurdenRatio     float64 `json:"debtBurdenRatio"`
	DBRHigh             bool    `json:"dbrHigh"`
	Matured             bool    `json:"matured"`
}

func newPersonalDTO(p *customer.PersonalInfo) PersonalInfoDTO {
	return PersonalInfoDTO{
		FullName:      p.FullName,
		NIK:           p.NIK,
		BirthDate:     formatDate(p.BirthDate),
		Gender:        string(p.Gender),
		MaritalStatus: string(p.MaritalStatus),
		Address:       p.Address,
		PhoneNumber:   p.PhoneNumber,
	}
}

func newPensionDTO(p *customer.PensionData) PensionDataDTO {
	return PensionDataDTO{
		PensionNumber:     p.PensionNumber,
		FormerInstitution: p.FormerInstitution,
		MutationOffice:    p.MutationOffice,
		PensionType:       string(p.PensionType),
		SKNumber:          p.SKNumber,
		SKIssuanceDate:    formatDate(p.SKIssuanceDate),
		SKReceivedDate:    formatOptDate(p.SKReceivedDate),
		SKDescription:     p.SKDescription,
		SalaryAmount:      p.SalaryAmount,
	}
}

func newNominativeDTO(n *customer.NominativeData) NominativeDTO {
	return NominativeDTO{
		LoanType:                string(n.LoanType),
		LoanDate:                formatDate(n.LoanDate),
		SPKCode:                 n.SPKCode,
		LoanAmount:              n.LoanAmount,
		InterestType:            string(n.InterestType),
		InterestRate:            n.InterestRate,
		TenureMonths:            n.TenureMonths,
		MonthlyInstallment:      n.MonthlyInstallment,
		DisbursementDate:        formatDate(n.DisbursementDate),
		MaturityDate:            formatDate(n.MaturityDate),
		RepaymentNotes:          n.RepaymentNotes,
		AdminFee:                n.AdminFee,
		ProvisionFee:            n.ProvisionFee,
		MarketingFee:            n.MarketingFee,
		RiskReserve:             n.RiskReserve,
		FlaggingFee:             n.FlaggingFee,
		PrincipalSavings:        n.PrincipalSavings,
		MandatorySavings:        n.MandatorySavings,
		RepaymentType:           string(n.RepaymentType),
		RepaymentAmount:         n.RepaymentAmount,
		BlockedAmountSK:         n.BlockedAmountSK,
		BlockedInstallmentCount: n.BlockedInstallmentCount,
	}
}

func newDocumentDTOs(docs []customer.Document) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentDTO{
			ID:       d.ID,
			Name:     d.Name,
			Type:     string(d.Type),
			Category: string(d.Category),
			URL:      d.URL,
		})
	}
	return out
}

func NewCustomerResponse(c *customer.Customer, matured bool) CustomerResponse {
	if c == nil {
		return CustomerResponse{}
	}
	n := &c.Nominative
	return CustomerResponse{
		ID:            c.ID,
		Personal:      newPersonalDTO(&c.Personal),
		Pension:       newPensionDTO(&c.Pension),
		Nominative:    newNominativeDTO(n),
		Documents:     newDocumentDTOs(c.Documents),
		MarketingName: c.MarketingName,

		Status:           string(c.EffectiveStatus()),
		ResolutionDate:   formatOptDate(c.ResolutionDate),
		ResolutionNotes:  c.ResolutionNotes,
		ResolutionAmount: c.ResolutionAmount,
		CreatedAt:        formatDate(c.CreatedAt),

		NetDisbursed:        n.NetDisbursed(),
		TotalMonthlyPayment: n.TotalMonthlyPayment(),
		EquivalentFlatRate:  customer.EquivalentFlatRate(n.MonthlyInstallment, n.LoanAmount, n.TenureMonths),
		DebtBurdenRatio:     customer.DebtBurdenRatio(n.MonthlyInstallment, c.Pension.SalaryAmount),
		DBRHigh:             customer.IsDBRHigh(n.MonthlyInstallment, c.Pension.SalaryAmount),
		Matured:             matured,
	}
}

type AttachDocumentsRequest struct {
	Documents []DocumentDTO `json:"documents"`
}

func (r *AttachDocumentsRequest) Validate() error {
	if len(r.Documents) == 0 {
		return fmt.Errorf("documents cannot be empty")
	}
	for i := range r.Documents {
		if err := r.Documents[i].Validate(); err != nil {
			return fmt.Errorf("documents[%d]: %v", i, err)
		}
	}
	return nil
}

// ResolutionRequest drives both the resolve and amend endpoints. A nil
// Documents field keeps the existing settlement documents; a non-nil
// one replaces them.
type ResolutionRequest struct {
	Status    string        `json:"status"`
	Date      string        `json:"date"`
	Amount    float64       `json:"amount,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Documents []DocumentDTO `json:"documents,omitempty"`
}

func (r *ResolutionRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return fmt.Errorf("status cannot be empty")
	}
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("date cannot be empty")
	}
	for i := range r.Documents {
		if err := r.Documents[i].Validate(); err != nil {
			return fmt.Errorf("documents[%d]: %v", i, err)
		}
	}
	return nil
}

func (r *ResolutionRequest) ToDomain() (customer.Resolution, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return customer.Resolution{}, err
	}
	return customer.Resolution{
		Status:    customer.Status(r.Status),
		Date:      date,
		Amount:    r.Amount,
		Notes:     r.Notes,
		Documents: documentsToDomain(r.Documents),
	}, nil
}

type TopUpPreviewResponse struct {
	Draft           CustomerResponse `json:"draft"`
	MonthsElapsed   int              `json:"monthsElapsed"`
	MonthsRemaining int              `json:"monthsRemaining"`
	EstimatedPayoff float64          `json:"estimatedPayoff"`
}

type SuggestSettlementResponse struct {
	SuggestedAmount float64 `json:"suggestedAmount"`
}

type DerivationPreviewRequest struct {
	Nominative        NominativeDTO `json:"nominative"`
	PreviousPrincipal float64       `json:"previousPrincipal"`
	PensionSalary     float64       `json:"pensionSalary,omitempty"`
}

func (r *DerivationPreviewRequest) ToDomain() (customer.NominativeData, error) {
	req := SaveCustomerRequest{Nominative: r.Nominative, Personal: PersonalInfoDTO{FullName: "-"}}
	c, err := req.ToDomain()
	if err != nil {
		return customer.NominativeData{}, err
	}
	return c.Nominative, nil
}

type DerivationPreviewResponse struct {
	Nominative          NominativeDTO `json:"nominative"`
	NetDisbursed        float64       `json:"netDisbursed"`
	TotalMonthlyPayment float64       `json:"totalMonthlyPayment"`
	EquivalentFlatRate  float64       `json:"equivalentFlatRate"`
	DebtBurdenRatio     float64       `json:"debtBurdenRatio"`
	DBRHigh             bool          `json:"dbrHigh"`
	FeeDefaultsApplied  bool          `json:"feeDefaultsApplied"`
}

func NewDerivationPreviewResponse(p *customer.DerivationPreview) DerivationPreviewResponse {
	return DerivationPreviewResponse{
		Nominative:          newNominativeDTO(&p.Nominative),
		NetDisbursed:        p.NetDisbursed,
		TotalMonthlyPayment: p.TotalMonthlyPayment,
		EquivalentFlatRate:  p.EquivalentFlatRate,
		DebtBurdenRatio:     p.DebtBurdenRatio,
		DBRHigh:             p.DBRHigh,
		FeeDefaultsApplied:  p.FeeDefaultsApplied,
	}
}

type ExtractFieldsRequest struct {
	Text string `json:"text"`
}

func (r *ExtractFieldsRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}
