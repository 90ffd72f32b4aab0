package database

import (
	"fmt"
	"log"
	"os"

	"loanportal-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Basic CHECK constraints
// - Bootstrap admin user from ADMIN_EMAIL/ADMIN_PASSWORD when no users exist
func Migrate() error {
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.FieldInspectionReport{},
			&models.PayoutReport{},
			&models.HeaderDetails{},
			&models.ReportRevision{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE field_inspection_reports ALTER COLUMN loan_amount TYPE numeric(12,2)`,
			`ALTER TABLE payout_reports           ALTER COLUMN loan_amount TYPE numeric(12,2)`,
			`ALTER TABLE payout_reports           ALTER COLUMN amount_paid TYPE numeric(12,2)`,
			`ALTER TABLE payout_reports           ALTER COLUMN less_tds    TYPE numeric(12,2)`,
			`ALTER TABLE payout_reports           ALTER COLUMN nett_amount TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("column migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'field_inspection_reports'::regclass
					  AND conname  = 'chk_inspections_loan_amount_nonneg'
				) THEN
					ALTER TABLE field_inspection_reports
					ADD CONSTRAINT chk_inspections_loan_amount_nonneg
					CHECK (loan_amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payout_reports'::regclass
					  AND conname  = 'chk_payouts_percentage_range'
				) THEN
					ALTER TABLE payout_reports
					ADD CONSTRAINT chk_payouts_percentage_range
					CHECK (payout_percentage >= 0 AND payout_percentage <= 100);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return seedAdmin(DB)
}

// seedAdmin provisions the bootstrap administrator on an empty install.
// Users are otherwise created only through the admin user-management API.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("no users exist and ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin seed")
		return nil
	}

	admin := models.User{
		FullName: "Administrator",
		Email:    email,
		Role:     models.RoleAdmin,
		Status:   "Active",
	}
	admin.SetPassword(password)
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("admin seed failed: %w", err)
	}
	log.Printf("seeded admin user %s", email)
	return nil
}
