// internal/services/report_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/repository"
)

type ReportService struct {
	licenses repository.LicenseRepository
	now      func() time.Time
}

type ReportSummary struct {
	Year                 int              `json:"year"`
	TotalRevenue         decimal.Decimal  `json:"total_revenue"`
	TotalLicenses        int              `json:"total_licenses"`
	AverageLicenseFee    decimal.Decimal  `json:"average_license_fee"`
	CurrentMonthRevenue  decimal.Decimal  `json:"current_month_revenue"`
	NewLicensesThisMonth int              `json:"new_licenses_this_month"`
	RenewalsThisMonth    int              `json:"renewals_this_month"`
	ExpiringNextMonth    int              `json:"expiring_next_month"`
	RevenueGrowth        float64          `json:"revenue_growth"`
	LicenseGrowth        float64          `json:"license_growth"`
	Monthly              []MonthlyReport  `json:"monthly"`
	Yearly               []YearlyReport   `json:"yearly"`
	LicenseTypes         []BreakdownEntry `json:"license_types"`
	Categories           []BreakdownEntry `json:"categories"`
	Countries            []BreakdownEntry `json:"countries"`
	ExpiryBuckets        []BucketEntry    `json:"expiry_buckets"`
}

type MonthlyReport struct {
	Month       string          `json:"month"`
	Revenue     decimal.Decimal `json:"revenue"`
	NewLicenses int             `json:"new_licenses"`
	Renewals    int             `json:"renewals"`
}

type YearlyReport struct {
	Year    int             `json:"year"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
	AvgFee  decimal.Decimal `json:"avg_fee"`
}

type BreakdownEntry struct {
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"`
}

type BucketEntry struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

func NewReportService(licenses repository.LicenseRepository) *ReportService {
	return &ReportService{licenses: licenses, now: time.Now}
}

// Summary aggregates every license. year selects the monthly breakdown and
// defaults to the current year when zero.
func (s *ReportService) Summary(ctx context.Context, year int) (*ReportSummary, error) {
	licenses, err := s.licenses.List(ctx, repository.LicenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load licenses: %w", err)
	}

	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	nextMonthStart := monthStart.AddDate(0, 1, 0)
	monthAfterStart := monthStart.AddDate(0, 2, 0)

	summary := &ReportSummary{
		Year:          year,
		TotalLicenses: len(licenses),
		Monthly:       make([]MonthlyReport, 12),
	}
	for m := range summary.Monthly {
		summary.Monthly[m].Month = time.Month(m + 1).String()[:3]
	}

	var (
		lastMonthRevenue decimal.Decimal
		lastMonthCount   int
		thisMonthCount   int
		yearly           = map[int]*YearlyReport{}
		types            = map[string]*BreakdownEntry{}
		categories       = map[string]*BreakdownEntry{}
		countries        = map[string]*BreakdownEntry{}
		buckets          = map[string]int{}
	)

	for i := range licenses {
		l := &licenses[i]
		fee := l.CalculatedFee
		created := l.CreatedAt.In(loc)
		summary.TotalRevenue = summary.TotalRevenue.Add(fee)

		switch {
		case !created.Before(monthStart) && created.Before(nextMonthStart):
			thisMonthCount++
			summary.CurrentMonthRevenue = summary.CurrentMonthRevenue.Add(fee)
			switch l.LicenseType {
			case licensing.LicenseTypeNew:
				summary.NewLicensesThisMonth++
			case licensing.LicenseTypeRenewal:
				summary.RenewalsThisMonth++
			}
		case !created.Before(lastMonthStart) && created.Before(monthStart):
			lastMonthCount++
			lastMonthRevenue = lastMonthRevenue.Add(fee)
		}

		expire := l.ExpireDate.In(loc)
		if !expire.Before(nextMonthStart) && expire.Before(monthAfterStart) {
			summary.ExpiringNextMonth++
		}

		if created.Year() == year {
			m := &summary.Monthly[created.Month()-1]
			m.Revenue = m.Revenue.Add(fee)
			switch l.LicenseType {
			case licensing.LicenseTypeNew:
				m.NewLicenses++
			case licensing.LicenseTypeRenewal:
				m.Renewals++
			}
		}

		y, ok := yearly[created.Year()]
		if !ok {
			y = &YearlyReport{Year: created.Year()}
			yearly[created.Year()] = y
		}
		y.Count++
		y.Revenue = y.Revenue.Add(fee)

		addBreakdown(types, l.LicenseType, fee)
		addBreakdown(categories, l.LicenseCategory, fee)
		addBreakdown(countries, l.CountryOfOrigin, fee)
		buckets[licensing.ExpiryBucket(l.ExpireDate, now)]++
	}

	if summary.TotalLicenses > 0 {
		summary.AverageLicenseFee = averageFee(summary.TotalRevenue, summary.TotalLicenses)
	}
	if lastMonthRevenue.IsPositive() {
		summary.RevenueGrowth = summary.CurrentMonthRevenue.Sub(lastMonthRevenue).
			Div(lastMonthRevenue).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	if lastMonthCount > 0 {
		summary.LicenseGrowth = float64(thisMonthCount-lastMonthCount) / float64(lastMonthCount) * 100
	}

	summary.Yearly = make([]YearlyReport, 0, len(yearly))
	for _, y := range yearly {
		if y.Count > 0 {
			y.AvgFee = averageFee(y.Revenue, y.Count)
		}
		summary.Yearly = append(summary.Yearly, *y)
	}
	sort.Slice(summary.Yearly, func(i, j int) bool { return summary.Yearly[i].Year < summary.Yearly[j].Year })

	summary.LicenseTypes = flattenBreakdown(types, summary.TotalLicenses)
	summary.Categories = flattenBreakdown(categories, summary.TotalLicenses)
	summary.Countries = flattenBreakdown(countries, summary.TotalLicenses)

	for _, name := range licensing.ExpiryBuckets() {
		summary.ExpiryBuckets = append(summary.ExpiryBuckets, BucketEntry{Bucket: name, Count: buckets[name]})
	}

	return summary, nil
}

func averageFee(total decimal.Decimal, count int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

func addBreakdown(acc map[string]*BreakdownEntry, name string, fee decimal.Decimal) {
	if name == "" {
		name = "Unknown"
	}
	e, ok := acc[name]
	if !ok {
		e = &BreakdownEntry{Name: name}
		acc[name] = e
	}
	e.Count++
	e.Revenue = e.Revenue.Add(fee)
}

// flattenBreakdown orders entries by count, largest first, then by name.
func flattenBreakdown(acc map[string]*BreakdownEntry, total int) []BreakdownEntry {
	out := make([]BreakdownEntry, 0, len(acc))
	for _, e := range acc {
		if total > 0 {
			e.Percentage = float64(e.Count) / float64(total) * 100
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
