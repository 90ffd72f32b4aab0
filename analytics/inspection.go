package analytics

import (
	"strings"
	"time"

	"loanportal-backend/models"
)

// The regional volume chart keeps only the first distinct regions
// encountered; the tail would be unreadable anyway.
const maxRegionBuckets = 8

type InspectionStats struct {
	TotalCases      int     `json:"total_cases"`
	LoanVolume      float64 `json:"loan_volume"`
	PendingInvoices int     `json:"pending_invoices"`
	PositiveRemarks int     `json:"positive_remarks"`
	PositiveRate    float64 `json:"positive_rate"` // percent, 0 when no cases
}

type InspectionDashboard struct {
	Stats         InspectionStats `json:"stats"`
	Trend         []Point         `json:"trend"`          // cases per day
	RegionVolume  []Point         `json:"region_volume"`  // loan volume per BOB region
	InvoiceStatus []Point         `json:"invoice_status"` // Cleared/Raised/Pending counts
}

// AggregateInspections filters the record set and derives the inspection
// dashboard: KPI reductions plus the three chart series.
func AggregateInspections(records []models.FieldInspectionReport, f Filter) (InspectionDashboard, []models.FieldInspectionReport) {
	filtered := FilterInspections(records, f)

	var d InspectionDashboard
	d.Stats.TotalCases = len(filtered)

	trend := newBuckets()
	regions := newBuckets()
	var cleared, raised, pending int

	for _, r := range filtered {
		d.Stats.LoanVolume += r.LoanAmount

		if r.InvoiceStatus == "Pending" {
			d.Stats.PendingInvoices++
		}
		if isPositiveRemark(r.LarRemarks) {
			d.Stats.PositiveRemarks++
		}

		trend.add(dayLabel(r.Date), 1)

		region := r.BobRegion
		if region == "" {
			region = "Unknown"
		}
		regions.add(region, r.LoanAmount)

		switch r.InvoiceStatus {
		case "Cleared":
			cleared++
		case "Raised":
			raised++
		default:
			pending++
		}
	}

	if d.Stats.TotalCases > 0 {
		d.Stats.PositiveRate = float64(d.Stats.PositiveRemarks) / float64(d.Stats.TotalCases) * 100
	}

	d.Trend = trend.points(0)
	d.RegionVolume = regions.points(maxRegionBuckets)
	for i := range d.RegionVolume {
		d.RegionVolume[i].Name = strings.TrimSuffix(d.RegionVolume[i].Name, " REGION")
	}
	d.InvoiceStatus = []Point{
		{Name: "Cleared", Value: float64(cleared)},
		{Name: "Raised", Value: float64(raised)},
		{Name: "Pending", Value: float64(pending)},
	}

	return d, filtered
}

// isPositiveRemark scans the free-text LAR outcome for "yes"/"positive"
// sentiment, case-insensitively.
func isPositiveRemark(remarks string) bool {
	lr := strings.ToLower(remarks)
	return strings.Contains(lr, "yes") || strings.Contains(lr, "positive")
}

// dayLabel renders an ISO date as "02 Jan" for the trend axis; unparseable
// dates keep their raw value rather than being dropped.
func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan")
}
