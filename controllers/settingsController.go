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

type HeaderDetailsDTO struct {
	CompanyName  string `json:"company_name" validate:"omitempty"`
	Address      string `json:"address" validate:"omitempty"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	LogoUrl      string `json:"logo_url" validate:"omitempty,url"`
}

// GET /api/settings
// Branding is readable by every authenticated caller; an empty install
// returns the zero record rather than a 404.
func GetSettings(c *fiber.Ctx) error {
	var details models.HeaderDetails
	err := database.GetDB(c).First(&details).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch settings")
	}
	return c.JSON(details)
}

// PUT /api/settings (admin)
// Upserts the singleton header record: update when a row exists, insert
// otherwise.
func UpdateSettings(c *fiber.Ctx) error {
	var in HeaderDetailsDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db := database.GetDB(c)

	var details models.HeaderDetails
	err := db.First(&details).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "could not fetch settings")
		}
		details = models.HeaderDetails{
			CompanyName:  in.CompanyName,
			Address:      in.Address,
			ContactEmail: in.ContactEmail,
			LogoUrl:      in.LogoUrl,
		}
		if err := db.Create(&details).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not save settings",
				"error":   err.Error(),
			})
		}
		return c.JSON(details)
	}

	updates := map[string]any{
		"company_name":  in.CompanyName,
		"address":       in.Address,
		"contact_email": in.ContactEmail,
		"logo_url":      in.LogoUrl,
	}
	if err := db.Model(&details).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not save settings",
			"error":   err.Error(),
		})
	}

	var out models.HeaderDetails
	if err := db.First(&out, "id = ?", details.Id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload settings")
	}
	return c.JSON(out)
}

// GET /api/meta
// Reference lists for the form dropdowns.
func GetMeta(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"states":           models.States,
		"bob_regions":      models.BobRegions,
		"our_regions":      models.OurRegions,
		"zones":            models.Zones,
		"payment_statuses": models.PaymentStatuses,
		"invoice_statuses": models.InvoiceStatuses,
		"payout_statuses":  models.PayoutStatuses,
	})
}
