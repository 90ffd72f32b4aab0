package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TDSRate is the fixed tax-withheld-at-source fraction applied to the
// amount paid. Not configurable in this version.
const TDSRate = 0.10

// PayoutReport tracks a commission payout for a sourced loan.
// AmountPaid, LessTds and NettAmount are derived from LoanAmount and
// PayoutPercentage; they are recomputed server-side and never accepted
// from the client.
type PayoutReport struct {
	Id               string  `json:"id" gorm:"primaryKey"`
	Month            string  `json:"month" gorm:"type:VARCHAR(7);not null;index"` // yyyy-mm
	CustomerName     string  `json:"customer_name" gorm:"not null"`
	Location         string  `json:"location"`
	Financier        string  `json:"financier"`
	OurRegion        string  `json:"our_region"`
	LoanAmount       float64 `json:"loan_amount" gorm:"type:numeric(12,2)"`
	PayoutPercentage float64 `json:"payout_percentage"`
	AmountPaid       float64 `json:"amount_paid" gorm:"type:numeric(12,2)"`
	LessTds          float64 `json:"less_tds" gorm:"type:numeric(12,2)"`
	NettAmount       float64 `json:"nett_amount" gorm:"type:numeric(12,2)"`

	// Beneficiary bank details
	BeneficiaryName string `json:"beneficiary_name"`
	AccountNo       string `json:"account_no"`
	IfscCode        string `json:"ifsc_code"`
	BankName        string `json:"bank_name"`

	PanNo     string `json:"pan_no"`
	SmName    string `json:"sm_name"`
	ContactNo string `json:"contact_no"`

	// Free-text status notes, e.g. "SENT ON 07-01-2025" / "PAID ON 07-01-2025".
	MailSent      string `json:"mail_sent"`
	PaymentStatus string `json:"payment_status"`

	CreatedByUserId string    `json:"created_by_user_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`

	// Resolved for display/export, never persisted.
	CreatorName string `json:"creator_name,omitempty" gorm:"-"`
}

func (r *PayoutReport) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if r.Id == "" {
		r.Id = uuid.NewString()
	}
	return
}

// Recompute derives the paid/TDS/nett amounts from the loan amount and
// payout percentage. Must be called whenever either input changes; the
// three outputs are never independently editable.
func (r *PayoutReport) Recompute() {
	r.AmountPaid = r.LoanAmount * r.PayoutPercentage / 100
	r.LessTds = r.AmountPaid * TDSRate
	r.NettAmount = r.AmountPaid - r.LessTds
}

func (r *PayoutReport) OwnerID() string {
	return r.CreatedByUserId
}
