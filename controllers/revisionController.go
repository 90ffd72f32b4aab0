package controllers

import (
	"encoding/json"
	"errors"

	"loanportal-backend/database"
	"loanportal-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordRevision stores an immutable snapshot of a report row before it is
// overwritten. Version numbers are sequential per report.
func recordRevision(db *gorm.DB, reportType, reportID string, record any) error {
	snap, err := json.Marshal(record)
	if err != nil {
		return err
	}

	var last int
	err = db.Model(&models.ReportRevision{}).
		Where("report_type = ? AND report_id = ?", reportType, reportID).
		Select("COALESCE(MAX(version_no), 0)").
		Scan(&last).Error
	if err != nil {
		return err
	}

	rev := models.ReportRevision{
		ReportType: reportType,
		ReportID:   reportID,
		VersionNo:  last + 1,
		Snapshot:   datatypes.JSON(snap),
	}
	return db.Create(&rev).Error
}

// GET /api/inspections/:id/revisions
func ListInspectionRevisions(c *fiber.Ctx) error {
	return listRevisions(c, models.ReportTypeInspection)
}

// GET /api/payouts/:id/revisions
func ListPayoutRevisions(c *fiber.Ctx) error {
	return listRevisions(c, models.ReportTypePayout)
}

func listRevisions(c *fiber.Ctx, reportType string) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	id := c.Params("id")
	db := database.GetDB(c)

	// The caller must be able to see the report itself.
	var err error
	switch reportType {
	case models.ReportTypePayout:
		err = db.Scopes(database.OwnedBy(role, userID)).First(&models.PayoutReport{}, "id = ?", id).Error
	default:
		err = db.Scopes(database.OwnedBy(role, userID)).First(&models.FieldInspectionReport{}, "id = ?", id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	var revisions []models.ReportRevision
	err = db.Where("report_type = ? AND report_id = ?", reportType, id).
		Order("version_no ASC").Find(&revisions).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch revisions")
	}

	return c.JSON(fiber.Map{
		"revisions": revisions,
		"message":   "success",
	})
}
