package analytics

import (
	"sort"
	"strings"

	"loanportal-backend/models"
)

type PayoutStats struct {
	TotalLoanAmount float64 `json:"total_loan_amount"`
	TotalNettPaid   float64 `json:"total_nett_paid"`
	TdsDeducted     float64 `json:"tds_deducted"`
	PendingPayouts  int     `json:"pending_payouts"`
}

type PayoutDashboard struct {
	Stats         PayoutStats `json:"stats"`
	Trend         []Point     `json:"trend"`          // nett amount per month, chronological
	Financier     []Point     `json:"financier"`      // nett amount per financier
	PaymentStatus []Point     `json:"payment_status"` // Paid vs Pending counts
}

// AggregatePayouts filters the record set and derives the payout dashboard.
func AggregatePayouts(records []models.PayoutReport, f Filter) (PayoutDashboard, []models.PayoutReport) {
	filtered := FilterPayouts(records, f)

	var d PayoutDashboard
	months := newBuckets()
	financiers := newBuckets()
	var paid, notPaid int

	for _, r := range filtered {
		d.Stats.TotalLoanAmount += r.LoanAmount
		d.Stats.TotalNettPaid += r.NettAmount
		d.Stats.TdsDeducted += r.LessTds
		if r.PaymentStatus == "Pending" {
			d.Stats.PendingPayouts++
		}

		months.add(r.Month, r.NettAmount)

		fin := r.Financier
		if fin == "" {
			fin = "Other"
		}
		financiers.add(fin, r.NettAmount)

		// Free-text status: anything mentioning "paid" counts as paid,
		// everything else (including empty) as pending. The two buckets
		// partition the filtered set.
		if strings.Contains(strings.ToLower(r.PaymentStatus), "paid") {
			paid++
		} else {
			notPaid++
		}
	}

	d.Trend = months.points(0)
	// Month keys are yyyy-mm, so a lexicographic sort is chronological.
	sort.Slice(d.Trend, func(i, j int) bool { return d.Trend[i].Name < d.Trend[j].Name })

	d.Financier = financiers.points(0)
	d.PaymentStatus = []Point{
		{Name: "Paid", Value: float64(paid)},
		{Name: "Pending", Value: float64(notPaid)},
	}

	return d, filtered
}
