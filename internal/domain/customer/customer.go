package customer

import (
	"strings"
	"time"
)

type Money = float64

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type MaritalStatus string

const (
	MaritalMarried       MaritalStatus = "MARRIED"
	MaritalSingle        MaritalStatus = "SINGLE"
	MaritalDivorcedDeath MaritalStatus = "DIVORCED_DEATH"
	MaritalWidow         MaritalStatus = "WIDOW"
	MaritalWidower       MaritalStatus = "WIDOWER"
)

type PensionType string

const (
	PensionTaspen PensionType = "TASPEN"
	PensionAsabri PensionType = "ASABRI"
)

type LoanType string

const (
	LoanNew      LoanType = "NEW"
	LoanTopUp    LoanType = "TOP_UP"
	LoanTakeOver LoanType = "TAKE_OVER"
)

// InterestType selects how the nominal rate is read: ANNUITY treats it
// as an annual percentage amortized monthly, FLAT as a monthly
// percentage applied to the original principal every period.
type InterestType string

const (
	InterestAnnuity InterestType = "ANNUITY"
	InterestFlat    InterestType = "FLAT"
)

type RepaymentType string

const (
	RepaymentTopUp    RepaymentType = "TOP_UP"
	RepaymentTakeOver RepaymentType = "TAKE_OVER"
	RepaymentPKA      RepaymentType = "PKA"
	RepaymentOther    RepaymentType = "OTHER"
)

type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusPKA          Status = "PKA"
	StatusSettledTopUp Status = "SETTLED_TOP_UP"
	StatusSettled      Status = "SETTLED"
	StatusCancelled    Status = "CANCELLED"
	StatusDeceased     Status = "DECEASED"
)

type PersonalInfo struct {
	FullName      string        `json:"fullName"`
	NIK           string        `json:"nik"`
	BirthDate     time.Time     `json:"birthDate"`
	Gender        Gender        `json:"gender"`
	MaritalStatus MaritalStatus `json:"maritalStatus"`
	Address       string        `json:"address"`
	PhoneNumber   string        `json:"phoneNumber"`
}

type PensionData struct {
	PensionNumber     string      `json:"pensionNumber"`
	FormerInstitution string      `json:"formerInstitution"`
	MutationOffice    string      `json:"mutationOffice,omitempty"`
	PensionType       PensionType `json:"pensionType"`
	SKNumber          string      `json:"skNumber"`
	SKIssuanceDate    time.Time   `json:"skIssuanceDate"`
	SKReceivedDate    *time.Time  `json:"skReceivedDate,omitempty"`
	SKDescription     string      `json:"skDescription"`
	SalaryAmount      Money       `json:"salaryAmount"`
}

// NominativeData holds the terms of the customer's current loan.
// MonthlyInstallment and MaturityDate are derived from the other fields
// and are refreshed by Recalculate whenever an input changes; they are
// never authored independently.
type NominativeData struct {
	LoanType         LoanType     `json:"loanType"`
	LoanDate         time.Time    `json:"loanDate"`
	SPKCode          string       `json:"spkCode"`
	LoanAmount       Money        `json:"loanAmount"`
	InterestType     InterestType `json:"interestType"`
	InterestRate     float64      `json:"interestRate"`
	TenureMonths     int          `json:"tenureMonths"`
	MonthlyInstallment Money      `json:"monthlyInstallment"`
	DisbursementDate time.Time    `json:"disbursementDate"`
	MaturityDate     time.Time    `json:"maturityDate"`
	RepaymentNotes   string       `json:"repaymentNotes"`

	AdminFee         Money `json:"adminFee"`
	ProvisionFee     Money `json:"provisionFee"`
	MarketingFee     Money `json:"marketingFee"`
	RiskReserve      Money `json:"riskReserve"`
	FlaggingFee      Money `json:"flaggingFee"`
	PrincipalSavings Money `json:"principalSavings"`
	MandatorySavings Money `json:"mandatorySavings"`

	RepaymentType   RepaymentType `json:"repaymentType"`
	RepaymentAmount Money         `json:"repaymentAmount"`

	BlockedAmountSK         Money `json:"blockedAmountSK"`
	BlockedInstallmentCount int   `json:"blockedInstallmentCount"`
}

type DocumentType string

const (
	DocImage DocumentType = "image"
	DocPDF   DocumentType = "pdf"
	DocAudio DocumentType = "audio"
	DocVideo DocumentType = "video"
	DocOther DocumentType = "other"
)

type DocumentCategory string

const (
	CategoryKTP                DocumentCategory = "KTP"
	CategoryKK                 DocumentCategory = "KK"
	CategorySK                 DocumentCategory = "SK"
	CategoryKARIP              DocumentCategory = "KARIP"
	CategoryEPOT               DocumentCategory = "EPOT"
	CategoryDAPEM              DocumentCategory = "DAPEM"
	CategorySLIK               DocumentCategory = "SLIK"
	CategoryASABRI             DocumentCategory = "ASABRI"
	CategoryNPWP               DocumentCategory = "NPWP"
	CategorySlipGaji           DocumentCategory = "SLIP_GAJI"
	CategoryRekKoran           DocumentCategory = "REK_KORAN"
	CategoryOther              DocumentCategory = "OTHER"
	CategoryAudio              DocumentCategory = "AUDIO"
	CategoryVideo              DocumentCategory = "VIDEO"
	CategoryProofOfSettlement  DocumentCategory = "BUKTI_LUNAS"
	CategoryDeathCertificate   DocumentCategory = "SURAT_KEMATIAN"
	CategoryBlockRelease       DocumentCategory = "SURAT_PENARIKAN_BLOKIR"
	CategorySPK                DocumentCategory = "SPK"
	CategoryCreditApplication  DocumentCategory = "APLIKASI_KREDIT"
	CategoryDebtorStatement    DocumentCategory = "PERNYATAAN_DEBITUR"
	CategorySKKT               DocumentCategory = "SKKT"
	CategoryMemberApplication  DocumentCategory = "PERMOHONAN_ANGGOTA"
	CategoryMutationStatement  DocumentCategory = "PERNYATAAN_MUTASI"
	CategoryPowerOfAttorney    DocumentCategory = "SURAT_KUASA"
	CategoryMemberBook         DocumentCategory = "BUKU_ANGGOTA"
	CategoryCancelStatement    DocumentCategory = "PERNYATAAN_BATAL"
	CategorySKReceipt          DocumentCategory = "TANDA_TERIMA_SK"
	CategoryCreditNote         DocumentCategory = "NOTA_KREDIT"
	CategoryReceipt            DocumentCategory = "KWITANSI"
	CategoryDisbursementProxy  DocumentCategory = "KUASA_PENCAIRAN"
	CategoryHandoverNote       DocumentCategory = "TANDA_PENYERAHAN"
	CategoryOriginalSK         DocumentCategory = "SK_ASLI"
	CategoryCustomerPhoto      DocumentCategory = "FOTO_NASABAH"
	CategoryCustomerMarketing  DocumentCategory = "FOTO_NASABAH_MARKETING"
)

// CategoryLimit returns the advisory upload cap for a category. The cap
// is enforced at the service boundary, not by the repository.
func CategoryLimit(cat DocumentCategory) int {
	switch cat {
	case CategoryDeathCertificate:
		return 10
	case CategorySlipGaji, CategorySLIK, CategoryASABRI, CategoryRekKoran:
		return 5
	default:
		return 3
	}
}

type Document struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     DocumentType     `json:"type"`
	Category DocumentCategory `json:"category"`
	URL      string           `json:"url"`
}

// DocumentTypeFromMIME maps a MIME type onto the coarse document type
// used by the archive.
func DocumentTypeFromMIME(mime string) DocumentType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return DocImage
	case mime == "application/pdf":
		return DocPDF
	case strings.HasPrefix(mime, "audio/"):
		return DocAudio
	case strings.HasPrefix(mime, "video/"):
		return DocVideo
	default:
		return DocOther
	}
}

// Customer is the aggregate root: one person, one current loan, the
// document archive and the lifecycle status of that loan.
type Customer struct {
	ID        string         `json:"id"`
	Personal  PersonalInfo   `json:"personal"`
	Pension   PensionData    `json:"pension"`
	Nominative NominativeData `json:"nominative"`
	Documents []Document     `json:"documents"`

	MarketingName string `json:"marketingName,omitempty"`

	Status           Status     `json:"status"`
	ResolutionDate   *time.Time `json:"resolutionDate,omitempty"`
	ResolutionNotes  string     `json:"resolutionNotes,omitempty"`
	ResolutionAmount Money      `json:"resolutionAmount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// EffectiveStatus treats a missing status as Active; records written by
// earlier revisions of the data model carry no status field at all.
func (c *Customer) EffectiveStatus() Status {
	if c.Status == "" {
		return StatusActive
	}
	return c.Status
}

func (c *Customer) IsActive() bool {
	return c.EffectiveStatus() == StatusActive
}

// IsMaturedDisplay reports whether an Active record should be labelled
// as matured because today is past the scheduled maturity date. This is
// a display concern only; the stored status remains Active until an
// explicit transition is applied.
func (c *Customer) IsMaturedDisplay(now time.Time) bool {
	return c.IsActive() && !c.Nominative.MaturityDate.IsZero() && now.After(c.Nominative.MaturityDate)
}

// DocumentsInCategory returns the archive entries carrying the given
// category tag, in insertion order.
func (c *Customer) DocumentsInCategory(cat DocumentCategory) []Document {
	var out []Document
	for _, d := range c.Documents {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}
