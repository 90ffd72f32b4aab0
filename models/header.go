package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeaderDetails is the singleton branding record shown in the portal header.
type HeaderDetails struct {
	Id           string `json:"id" gorm:"primaryKey"`
	CompanyName  string `json:"company_name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	LogoUrl      string `json:"logo_url"`
}

func (h *HeaderDetails) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if h.Id == "" {
		h.Id = uuid.NewString()
	}
	return
}
