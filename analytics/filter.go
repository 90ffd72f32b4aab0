// Package analytics holds the dashboard aggregation logic: pure reductions
// over already-fetched report slices. Nothing here touches the database.
package analytics

import "loanportal-backend/models"

// Filter narrows a dashboard pass. Zero values mean "no constraint"; all
// present criteria are conjunctive.
type Filter struct {
	Region    string
	StartDate string // yyyy-mm-dd, inclusive
	EndDate   string // yyyy-mm-dd, inclusive
}

// FilterInspections keeps records matching every present criterion. The
// region matches either the BOB region or our region; date bounds compare
// lexicographically, which is sound because dates are stored in ISO form.
func FilterInspections(records []models.FieldInspectionReport, f Filter) []models.FieldInspectionReport {
	out := make([]models.FieldInspectionReport, 0, len(records))
	for _, r := range records {
		if f.Region != "" && r.BobRegion != f.Region && r.OurRegion != f.Region {
			continue
		}
		if f.StartDate != "" && r.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && r.Date > f.EndDate {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterPayouts keeps records matching every present criterion. Payouts are
// monthly, so date bounds compare against the first day of the month.
func FilterPayouts(records []models.PayoutReport, f Filter) []models.PayoutReport {
	out := make([]models.PayoutReport, 0, len(records))
	for _, r := range records {
		if f.Region != "" && r.OurRegion != f.Region {
			continue
		}
		day := r.Month + "-01"
		if f.StartDate != "" && day < f.StartDate {
			continue
		}
		if f.EndDate != "" && day > f.EndDate {
			continue
		}
		out = append(out, r)
	}
	return out
}
