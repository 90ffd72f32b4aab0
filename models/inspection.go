package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldInspectionReport is one site visit against a loan account.
// Date is stored as an ISO yyyy-mm-dd string so range filters can compare
// lexicographically.
type FieldInspectionReport struct {
	Id              string    `json:"id" gorm:"primaryKey"`
	Date            string    `json:"date" gorm:"type:VARCHAR(10);not null;index"`
	LoanAcNo        string    `json:"loan_ac_no" gorm:"not null"`
	CustomerName    string    `json:"customer_name" gorm:"not null"`
	LoanAmount      float64   `json:"loan_amount" gorm:"type:numeric(12,2)"`
	Location        string    `json:"location"`
	BobRegion       string    `json:"bob_region"`
	OurRegion       string    `json:"our_region"`
	LarRemarks      string    `json:"lar_remarks"`
	Zone            string    `json:"zone"`
	State           string    `json:"state"`
	PaymentStatus   string    `json:"payment_status" gorm:"type:VARCHAR(20);default:Pending"` // Pending | Paid | Overdue
	InvoiceStatus   string    `json:"invoice_status" gorm:"type:VARCHAR(20);default:Pending"` // Pending | Raised | Cleared
	CreatedByUserId string    `json:"created_by_user_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`

	// Resolved for display/export, never persisted.
	CreatorName string `json:"creator_name,omitempty" gorm:"-"`
}

func (r *FieldInspectionReport) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if r.Id == "" {
		r.Id = uuid.NewString()
	}
	return
}

func (r *FieldInspectionReport) OwnerID() string {
	return r.CreatedByUserId
}
