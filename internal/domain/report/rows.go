package report

import (
	"strconv"
	"time"

	"lending-desk/internal/domain/customer"
	"lending-desk/internal/domain/marketing"
)

// Sheet is a flat, header-plus-rows projection ready for the workbook
// writer. All cells are pre-formatted strings.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtOptDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtDate(*t)
}

func fmtMoney(v customer.Money) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fmtRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MasterSheet is the one-row-per-customer identity listing.
func MasterSheet(customers []customer.Customer) Sheet {
	s := Sheet{
		Name: "Master",
		Headers: []string{
			"No", "Full Name", "NIK", "Birth Date", "Gender", "Marital Status",
			"Address", "Phone", "Pension Number", "Institution", "Pension Type",
			"SK Number", "Salary", "Status", "Marketing", "Created At",
		},
	}
	for i := range customers {
		c := &customers[i]
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			c.Personal.FullName,
			c.Personal.NIK,
			fmtDate(c.Personal.BirthDate),
			string(c.Personal.Gender),
			string(c.Personal.MaritalStatus),
			c.Personal.Address,
			c.Personal.PhoneNumber,
			c.Pension.PensionNumber,
			c.Pension.FormerInstitution,
			string(c.Pension.PensionType),
			c.Pension.SKNumber,
			fmtMoney(c.Pension.SalaryAmount),
			string(c.EffectiveStatus()),
			c.MarketingName,
			fmtDate(c.CreatedAt),
		})
	}
	return s
}

// NominativeSheet is the loan-terms listing with the derived figures
// recomputed at export time.
func NominativeSheet(customers []customer.Customer) Sheet {
	s := Sheet{
		Name: "Nominative",
		Headers: []string{
			"No", "Full Name", "Pension Number", "Loan Type", "Loan Date", "SPK Code",
			"Plafon", "Interest Type", "Rate", "Tenure", "Installment",
			"Disbursement Date", "Maturity Date", "Admin Fee", "Provision Fee",
			"Marketing Fee", "Risk Reserve", "Flagging Fee", "Principal Savings",
			"Mandatory Savings", "Repayment Type", "Repayment Amount",
			"Blocked SK", "Blocked Installments", "Net Disbursed", "DBR %", "Status",
		},
	}
	for i := range customers {
		c := &customers[i]
		n := &c.Nominative
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			c.Personal.FullName,
			c.Pension.PensionNumber,
			string(n.LoanType),
			fmtDate(n.LoanDate),
			n.SPKCode,
			fmtMoney(n.LoanAmount),
			string(n.InterestType),
			fmtRate(n.InterestRate),
			strconv.Itoa(n.TenureMonths),
			fmtMoney(n.MonthlyInstallment),
			fmtDate(n.DisbursementDate),
			fmtDate(n.MaturityDate),
			fmtMoney(n.AdminFee),
			fmtMoney(n.ProvisionFee),
			fmtMoney(n.MarketingFee),
			fmtMoney(n.RiskReserve),
			fmtMoney(n.FlaggingFee),
			fmtMoney(n.PrincipalSavings),
			fmtMoney(n.MandatorySavings),
			string(n.RepaymentType),
			fmtMoney(n.RepaymentAmount),
			fmtMoney(n.BlockedAmountSK),
			strconv.Itoa(n.BlockedInstallmentCount),
			fmtMoney(n.NetDisbursed()),
			fmtRate(customer.DebtBurdenRatio(n.MonthlyInstallment, c.Pension.SalaryAmount)),
			string(c.EffectiveStatus()),
		})
	}
	return s
}

// SettledSheet lists only resolved records with their resolution
// details.
func SettledSheet(customers []customer.Customer) Sheet {
	s := Sheet{
		Name: "Settled",
		Headers: []string{
			"No", "Full Name", "Pension Number", "Plafon", "Status",
			"Resolution Date", "Resolution Amount", "Notes",
		},
	}
	no := 0
	for i := range customers {
		c := &customers[i]
		if c.IsActive() {
			continue
		}
		no++
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(no),
			c.Personal.FullName,
			c.Pension.PensionNumber,
			fmtMoney(c.Nominative.LoanAmount),
			string(c.EffectiveStatus()),
			fmtOptDate(c.ResolutionDate),
			fmtMoney(c.ResolutionAmount),
			c.ResolutionNotes,
		})
	}
	return s
}

// ArchiveSheet tracks the physical SK decree per customer: who owns
// it, when the office received it, and whether a scan was filed in the
// document store.
func ArchiveSheet(customers []customer.Customer) Sheet {
	s := Sheet{
		Name: "Archive",
		Headers: []string{
			"No", "SK Owner", "NOPEN", "SK Number", "SPK Code",
			"SK Received Date", "SK File Uploaded",
		},
	}
	for i := range customers {
		c := &customers[i]
		uploaded := "NO"
		if len(c.DocumentsInCategory(customer.CategorySK)) > 0 {
			uploaded = "YES"
		}
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			c.Personal.FullName,
			c.Pension.PensionNumber,
			c.Pension.SKNumber,
			c.Nominative.SPKCode,
			fmtOptDate(c.Pension.SKReceivedDate),
			uploaded,
		})
	}
	return s
}

// MarketingSheet lists targets with their derived bucket totals.
func MarketingSheet(summaries []marketing.TargetSummary) Sheet {
	s := Sheet{
		Name: "Marketing",
		Headers: []string{
			"No", "Marketing", "Branch", "Year", "Month", "NOA Goal", "Target",
			"Week 1", "Week 2", "Week 3", "Week 4", "Week 5",
			"Realization", "Attainment %",
		},
	}
	for i, sum := range summaries {
		row := []string{
			strconv.Itoa(i + 1),
			sum.Target.MarketingName,
			sum.Target.Branch,
			strconv.Itoa(sum.Target.Year),
			strconv.Itoa(sum.Target.Month),
			strconv.Itoa(sum.Target.NOAGoal),
			sum.Target.TargetAmount.StringFixed(2),
		}
		for _, w := range sum.WeekTotals {
			row = append(row, w.StringFixed(2))
		}
		row = append(row, sum.TotalRealization.StringFixed(2), sum.Attainment.StringFixed(2))
		s.Rows = append(s.Rows, row)
	}
	return s
}
