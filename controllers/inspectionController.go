package controllers

import (
	"errors"

	"loanportal-backend/database"
	"loanportal-backend/middlewares"
	"loanportal-backend/models"
	"loanportal-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InspectionCreateDTO struct {
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	LoanAcNo      string  `json:"loan_ac_no" validate:"required"`
	CustomerName  string  `json:"customer_name" validate:"required"`
	LoanAmount    float64 `json:"loan_amount" validate:"gte=0"`
	Location      string  `json:"location" validate:"omitempty"`
	BobRegion     string  `json:"bob_region" validate:"omitempty"`
	OurRegion     string  `json:"our_region" validate:"omitempty"`
	LarRemarks    string  `json:"lar_remarks" validate:"omitempty"`
	Zone          string  `json:"zone" validate:"omitempty"`
	State         string  `json:"state" validate:"omitempty"`
	PaymentStatus string  `json:"payment_status" validate:"omitempty,oneof=Pending Paid Overdue"`
	InvoiceStatus string  `json:"invoice_status" validate:"omitempty,oneof=Pending Raised Cleared"`
}

type InspectionUpdateDTO struct {
	Date          *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	LoanAcNo      *string  `json:"loan_ac_no" validate:"omitempty,min=1"`
	CustomerName  *string  `json:"customer_name" validate:"omitempty,min=1"`
	LoanAmount    *float64 `json:"loan_amount" validate:"omitempty,gte=0"`
	Location      *string  `json:"location" validate:"omitempty"`
	BobRegion     *string  `json:"bob_region" validate:"omitempty"`
	OurRegion     *string  `json:"our_region" validate:"omitempty"`
	LarRemarks    *string  `json:"lar_remarks" validate:"omitempty"`
	Zone          *string  `json:"zone" validate:"omitempty"`
	State         *string  `json:"state" validate:"omitempty"`
	PaymentStatus *string  `json:"payment_status" validate:"omitempty,oneof=Pending Paid Overdue"`
	InvoiceStatus *string  `json:"invoice_status" validate:"omitempty,oneof=Pending Raised Cleared"`
}

// POST /api/inspections
func CreateInspection(c *fiber.Ctx) error {
	var in InspectionCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	userID, _ := c.Locals("userID").(string)

	report := models.FieldInspectionReport{
		Date:            in.Date,
		LoanAcNo:        in.LoanAcNo,
		CustomerName:    in.CustomerName,
		LoanAmount:      in.LoanAmount,
		Location:        in.Location,
		BobRegion:       in.BobRegion,
		OurRegion:       in.OurRegion,
		LarRemarks:      in.LarRemarks,
		Zone:            in.Zone,
		State:           in.State,
		PaymentStatus:   in.PaymentStatus,
		InvoiceStatus:   in.InvoiceStatus,
		CreatedByUserId: userID,
	}

	if err := database.GetDB(c).Create(&report).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create inspection report",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GET /api/inspections?start_date=&end_date=&payment_status=
func ListInspections(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	db := database.GetDB(c)

	q := db.Scopes(database.OwnedBy(role, userID)).Order("date DESC")
	if v := c.Query("start_date"); v != "" {
		q = q.Where("date >= ?", v)
	}
	if v := c.Query("end_date"); v != "" {
		q = q.Where("date <= ?", v)
	}
	if v := c.Query("payment_status"); v != "" {
		q = q.Where("payment_status = ?", v)
	}

	var reports []models.FieldInspectionReport
	if err := q.Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch inspection reports",
			"error":   err.Error(),
		})
	}

	names := creatorNames(db)
	for i := range reports {
		reports[i].CreatorName = nameOr(names, reports[i].CreatedByUserId)
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"message": "success",
	})
}

// GET /api/inspections/:id
func GetInspection(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)

	var report models.FieldInspectionReport
	err := database.GetDB(c).Scopes(database.OwnedBy(role, userID)).
		First(&report, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "inspection report not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(report)
}

// PUT /api/inspections/:id
func UpdateInspection(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	id := c.Params("id")

	var in InspectionUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.GetDB(c)

	var existing models.FieldInspectionReport
	err := db.Scopes(database.OwnedBy(role, userID)).First(&existing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "inspection report not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if !database.CanEdit(role, userID, &existing) {
		return fiber.NewError(fiber.StatusForbidden, "not allowed to edit this report")
	}

	// Snapshot what is about to be overwritten; updates are last-write-wins.
	if err := recordRevision(db, models.ReportTypeInspection, existing.Id, &existing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record revision")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.FieldInspectionReport{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not update inspection report",
				"error":   err.Error(),
			})
		}
	}

	var out models.FieldInspectionReport
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload report")
	}
	return c.JSON(out)
}
