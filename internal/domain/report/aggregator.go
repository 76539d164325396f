package report

import (
	"sort"
	"strings"
	"time"

	"lending-desk/internal/domain/customer"
)

// InstitutionBucket is the reporting group a record's paying institution
// falls into.
type InstitutionBucket string

const (
	BucketPOS      InstitutionBucket = "POS"
	BucketSMBC     InstitutionBucket = "SMBC"
	BucketBRI      InstitutionBucket = "BRI"
	BucketMantap   InstitutionBucket = "MANTAP"
	BucketDPTaspen InstitutionBucket = "DP_TASPEN"
	BucketOther    InstitutionBucket = "OTHER"
)

type classifierRule struct {
	bucket   InstitutionBucket
	match    []string
	excludes []string
}

// classifierRules are evaluated in order; the first hit wins. The BRI
// rule excludes "asabri" so ASABRI pensions never count as BRI-paid.
var classifierRules = []classifierRule{
	{bucket: BucketPOS, match: []string{"pos"}},
	{bucket: BucketSMBC, match: []string{"smbc", "btpn"}},
	{bucket: BucketBRI, match: []string{"bri"}, excludes: []string{"asabri"}},
	{bucket: BucketMantap, match: []string{"mantap"}},
	{bucket: BucketDPTaspen, match: []string{"dp taspen", "dp-taspen"}},
}

// ClassifyInstitution maps a free-text paying-institution name onto its
// reporting bucket.
func ClassifyInstitution(name string) InstitutionBucket {
	lowered := strings.ToLower(name)
	for _, rule := range classifierRules {
		excluded := false
		for _, ex := range rule.excludes {
			if strings.Contains(lowered, ex) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		for _, m := range rule.match {
			if strings.Contains(lowered, m) {
				return rule.bucket
			}
		}
	}
	return BucketOther
}

// StartOfWeek is midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// Window is the disbursement activity inside one time window. The
// headcount includes every record disbursed in the window; the money
// sums skip cancelled loans, which never disbursed.
type Window struct {
	Count        int           `json:"count"`
	GrossPlafon  customer.Money `json:"grossPlafon"`
	NetDisbursed customer.Money `json:"netDisbursed"`
}

// MarketingGroup is the per-officer rollup used by the dashboard.
type MarketingGroup struct {
	Name         string         `json:"name"`
	Count        int            `json:"count"`
	GrossPlafon  customer.Money `json:"grossPlafon"`
	NetDisbursed customer.Money `json:"netDisbursed"`
}

// Dashboard is the aggregate view over the whole record collection.
type Dashboard struct {
	TotalCustomers  int `json:"totalCustomers"`
	ActiveCustomers int `json:"activeCustomers"`

	GrossPlafon   customer.Money `json:"grossPlafon"`
	AveragePlafon customer.Money `json:"averagePlafon"`

	ThisWeek  Window `json:"thisWeek"`
	ThisMonth Window `json:"thisMonth"`
	ThisYear  Window `json:"thisYear"`

	ByStatus      map[customer.Status]int    `json:"byStatus"`
	ByInstitution map[InstitutionBucket]int  `json:"byInstitution"`
	ByMarketing   []MarketingGroup           `json:"byMarketing"`
}

func inWindow(disbursed, start, now time.Time) bool {
	if disbursed.IsZero() {
		return false
	}
	return !disbursed.Before(start) && !disbursed.After(now)
}

func accumulate(w *Window, c *customer.Customer) {
	w.Count++
	if c.EffectiveStatus() == customer.StatusCancelled {
		return
	}
	w.GrossPlafon += c.Nominative.LoanAmount
	w.NetDisbursed += c.Nominative.NetDisbursed()
}

// BuildDashboard computes every dashboard figure in a single pass over
// the collection.
func BuildDashboard(customers []customer.Customer, now time.Time) Dashboard {
	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)
	yearStart := StartOfYear(now)

	d := Dashboard{
		ByStatus:      make(map[customer.Status]int),
		ByInstitution: make(map[InstitutionBucket]int),
	}
	groups := make(map[string]*MarketingGroup)

	for i := range customers {
		c := &customers[i]
		status := c.EffectiveStatus()

		d.TotalCustomers++
		d.ByStatus[status]++
		d.ByInstitution[ClassifyInstitution(c.Pension.FormerInstitution)]++
		if c.IsActive() {
			d.ActiveCustomers++
		}
		if status != customer.StatusCancelled {
			d.GrossPlafon += c.Nominative.LoanAmount
		}

		disbursed := c.Nominative.DisbursementDate
		if inWindow(disbursed, weekStart, now) {
			accumulate(&d.ThisWeek, c)
		}
		if inWindow(disbursed, monthStart, now) {
			accumulate(&d.ThisMonth, c)
		}
		if inWindow(disbursed, yearStart, now) {
			accumulate(&d.ThisYear, c)
		}

		name := c.MarketingName
		if name == "" {
			name = "(unassigned)"
		}
		g, ok := groups[name]
		if !ok {
			g = &MarketingGroup{Name: name}
			groups[name] = g
		}
		g.Count++
		if status != customer.StatusCancelled {
			g.GrossPlafon += c.Nominative.LoanAmount
			g.NetDisbursed += c.Nominative.NetDisbursed()
		}
	}

	if d.TotalCustomers > 0 {
		d.AveragePlafon = d.GrossPlafon / float64(d.TotalCustomers)
	}

	d.ByMarketing = make([]MarketingGroup, 0, len(groups))
	for _, g := range groups {
		d.ByMarketing = append(d.ByMarketing, *g)
	}
	sort.Slice(d.ByMarketing, func(i, j int) bool {
		return d.ByMarketing[i].Name < d.ByMarketing[j].Name
	})
	return d
}

// CountByInstitution buckets the collection by paying institution.
// With activeOnly set, resolved and cancelled records are skipped.
func CountByInstitution(customers []customer.Customer, activeOnly bool) map[InstitutionBucket]int {
	counts := make(map[InstitutionBucket]int)
	for i := range customers {
		c := &customers[i]
		if activeOnly && !c.IsActive() {
			continue
		}
		counts[ClassifyInstitution(c.Pension.FormerInstitution)]++
	}
	return counts
}
