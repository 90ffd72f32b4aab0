package controllers

import (
	"log"
	"strings"

	"loanportal-backend/analytics"
	"loanportal-backend/database"
	"loanportal-backend/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard?tab=INSPECTION|PAYOUT&region=&start_date=&end_date=
//
// Fetches the caller's scoped record set and runs the full aggregation pass
// over it. A failed read degrades to an empty dashboard rather than an
// error page.
func GetDashboard(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	db := database.GetDB(c)

	tab := strings.ToUpper(c.Query("tab", "INSPECTION"))
	f := analytics.Filter{
		Region:    c.Query("region"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	if tab == "PAYOUT" {
		var records []models.PayoutReport
		if err := db.Scopes(database.OwnedBy(role, userID)).Find(&records).Error; err != nil {
			log.Printf("dashboard payout fetch failed: %v", err)
			records = nil
		}
		d, filtered := analytics.AggregatePayouts(records, f)
		return c.JSON(fiber.Map{
			"tab":            "PAYOUT",
			"stats":          d.Stats,
			"trend":          d.Trend,
			"financier":      d.Financier,
			"payment_status": d.PaymentStatus,
			"filtered_count": len(filtered),
		})
	}

	var records []models.FieldInspectionReport
	if err := db.Scopes(database.OwnedBy(role, userID)).Find(&records).Error; err != nil {
		log.Printf("dashboard inspection fetch failed: %v", err)
		records = nil
	}
	d, filtered := analytics.AggregateInspections(records, f)
	return c.JSON(fiber.Map{
		"tab":            "INSPECTION",
		"stats":          d.Stats,
		"trend":          d.Trend,
		"region_volume":  d.RegionVolume,
		"invoice_status": d.InvoiceStatus,
		"filtered_count": len(filtered),
	})
}
