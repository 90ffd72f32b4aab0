package controllers

import (
	"fmt"
	"time"

	"loanportal-backend/database"
	"loanportal-backend/models"
	"loanportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var inspectionColumns = []string{
	"SL.No", "Date", "Loan A/C No", "Name", "Loan Amount", "Location",
	"BOB Region", "Our Region", "LAR Remarks", "Zone", "State",
	"Payment Status", "Invoice Status", "Created By",
}

var payoutColumns = []string{
	"Sr No", "Name", "Month", "Location", "Financier", "Our Region",
	"Loan Amount", "Payout %", "Amount paid", "less TDS", "Nett",
	"Name as per Bank Account Holder 1", "A/C No", "IFSC", "Bank", "PAN",
	"SM NAME", "CUSTOMER CONTACT NO.", "Mail sent to Accounts/Paid",
	"Payment status", "Created By",
}

// GET /api/inspections/export
func ExportInspections(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	db := database.GetDB(c)

	var reports []models.FieldInspectionReport
	err := db.Scopes(database.OwnedBy(role, userID)).Order("date DESC").Find(&reports).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch inspection reports")
	}
	names := creatorNames(db)

	rows := make([][]interface{}, 0, len(reports))
	for i, r := range reports {
		rows = append(rows, []interface{}{
			i + 1, formatDateDMY(r.Date), r.LoanAcNo, r.CustomerName, r.LoanAmount,
			r.Location, r.BobRegion, r.OurRegion, r.LarRemarks, r.Zone, r.State,
			r.PaymentStatus, r.InvoiceStatus, nameOr(names, r.CreatedByUserId),
		})
	}

	buf, err := utils.WriteReportSheet(inspectionColumns, rows)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build spreadsheet")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="Inspection_Reports.xlsx"`)
	return c.Send(buf.Bytes())
}

// GET /api/payouts/export
func ExportPayouts(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	db := database.GetDB(c)

	var reports []models.PayoutReport
	err := db.Scopes(database.OwnedBy(role, userID)).Order("month DESC").Find(&reports).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch payout reports")
	}
	names := creatorNames(db)

	rows := make([][]interface{}, 0, len(reports))
	for i, r := range reports {
		rows = append(rows, []interface{}{
			i + 1, r.CustomerName, shortMonth(r.Month), r.Location, r.Financier,
			r.OurRegion, r.LoanAmount, fmt.Sprintf("%g%%", r.PayoutPercentage),
			r.AmountPaid, r.LessTds, r.NettAmount,
			r.BeneficiaryName, r.AccountNo, r.IfscCode, r.BankName, r.PanNo,
			r.SmName, r.ContactNo, r.MailSent, r.PaymentStatus,
			nameOr(names, r.CreatedByUserId),
		})
	}

	buf, err := utils.WriteReportSheet(payoutColumns, rows)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build spreadsheet")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="Payout_Reports.xlsx"`)
	return c.Send(buf.Bytes())
}

// GET /api/inspections/mail-draft
func InspectionMailDraft(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mailto": utils.MailtoLink(c.Query("recipient"), "Inspection Report", "Attached is the inspection report."),
	})
}

// GET /api/payouts/mail-draft
func PayoutMailDraft(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mailto": utils.MailtoLink(c.Query("recipient"), "Payout Report", "Attached is the payout report."),
	})
}

// formatDateDMY renders an ISO date as dd/mm/yyyy for the sheet; anything
// unparseable is exported as stored.
func formatDateDMY(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// shortMonth renders a yyyy-mm month as its short name ("Jan").
func shortMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan")
}
