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

// Payout DTOs deliberately carry no amount_paid/less_tds/nett_amount: the
// server always derives them (models.PayoutReport.Recompute).
type PayoutCreateDTO struct {
	Month            string  `json:"month" validate:"required,datetime=2006-01"`
	CustomerName     string  `json:"customer_name" validate:"required"`
	Location         string  `json:"location" validate:"omitempty"`
	Financier        string  `json:"financier" validate:"omitempty"`
	OurRegion        string  `json:"our_region" validate:"omitempty"`
	LoanAmount       float64 `json:"loan_amount" validate:"gte=0"`
	PayoutPercentage float64 `json:"payout_percentage" validate:"gte=0,lte=100"`
	BeneficiaryName  string  `json:"beneficiary_name" validate:"omitempty"`
	AccountNo        string  `json:"account_no" validate:"omitempty"`
	IfscCode         string  `json:"ifsc_code" validate:"omitempty"`
	BankName         string  `json:"bank_name" validate:"omitempty"`
	PanNo            string  `json:"pan_no" validate:"omitempty"`
	SmName           string  `json:"sm_name" validate:"omitempty"`
	ContactNo        string  `json:"contact_no" validate:"omitempty"`
	MailSent         string  `json:"mail_sent" validate:"omitempty"`
	PaymentStatus    string  `json:"payment_status" validate:"omitempty"`
}

type PayoutUpdateDTO struct {
	Month            *string  `json:"month" validate:"omitempty,datetime=2006-01"`
	CustomerName     *string  `json:"customer_name" validate:"omitempty,min=1"`
	Location         *string  `json:"location" validate:"omitempty"`
	Financier        *string  `json:"financier" validate:"omitempty"`
	OurRegion        *string  `json:"our_region" validate:"omitempty"`
	LoanAmount       *float64 `json:"loan_amount" validate:"omitempty,gte=0"`
	PayoutPercentage *float64 `json:"payout_percentage" validate:"omitempty,gte=0,lte=100"`
	BeneficiaryName  *string  `json:"beneficiary_name" validate:"omitempty"`
	AccountNo        *string  `json:"account_no" validate:"omitempty"`
	IfscCode         *string  `json:"ifsc_code" validate:"omitempty"`
	BankName         *string  `json:"bank_name" validate:"omitempty"`
	PanNo            *string  `json:"pan_no" validate:"omitempty"`
	SmName           *string  `json:"sm_name" validate:"omitempty"`
	ContactNo        *string  `json:"contact_no" validate:"omitempty"`
	MailSent         *string  `json:"mail_sent" validate:"omitempty"`
	PaymentStatus    *string  `json:"payment_status" validate:"omitempty"`
}

// POST /api/payouts
func CreatePayout(c *fiber.Ctx) error {
	var in PayoutCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	userID, _ := c.Locals("userID").(string)

	report := models.PayoutReport{
		Month:            in.Month,
		CustomerName:     in.CustomerName,
		Location:         in.Location,
		Financier:        in.Financier,
		OurRegion:        in.OurRegion,
		LoanAmount:       in.LoanAmount,
		PayoutPercentage: in.PayoutPercentage,
		BeneficiaryName:  in.BeneficiaryName,
		AccountNo:        in.AccountNo,
		IfscCode:         in.IfscCode,
		BankName:         in.BankName,
		PanNo:            in.PanNo,
		SmName:           in.SmName,
		ContactNo:        in.ContactNo,
		MailSent:         in.MailSent,
		PaymentStatus:    in.PaymentStatus,
		CreatedByUserId:  userID,
	}
	report.Recompute()

	if err := database.GetDB(c).Create(&report).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create payout report",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GET /api/payouts
func ListPayouts(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	db := database.GetDB(c)

	var reports []models.PayoutReport
	err := db.Scopes(database.OwnedBy(role, userID)).Order("month DESC").Find(&reports).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch payout reports",
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

// GET /api/payouts/:id
func GetPayout(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)

	var report models.PayoutReport
	err := database.GetDB(c).Scopes(database.OwnedBy(role, userID)).
		First(&report, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payout report not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(report)
}

// PUT /api/payouts/:id
func UpdatePayout(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	id := c.Params("id")

	var in PayoutUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.GetDB(c)

	var existing models.PayoutReport
	err := db.Scopes(database.OwnedBy(role, userID)).First(&existing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payout report not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if !database.CanEdit(role, userID, &existing) {
		return fiber.NewError(fiber.StatusForbidden, "not allowed to edit this report")
	}

	if err := recordRevision(db, models.ReportTypePayout, existing.Id, &existing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record revision")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.PayoutReport{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not update payout report",
				"error":   err.Error(),
			})
		}
	}

	var out models.PayoutReport
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload report")
	}

	// Rederive the paid/TDS/nett columns; client-supplied values for the
	// derived fields are never honored.
	out.Recompute()
	err = db.Model(&models.PayoutReport{}).Where("id = ?", id).Updates(map[string]any{
		"amount_paid": out.AmountPaid,
		"less_tds":    out.LessTds,
		"nett_amount": out.NettAmount,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update payout report",
			"error":   err.Error(),
		})
	}

	return c.JSON(out)
}
