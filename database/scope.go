package database

import (
	"loanportal-backend/models"

	"gorm.io/gorm"
)

// Owned is implemented by report rows that carry a creating user.
type Owned interface {
	OwnerID() string
}

// OwnedBy is the access scope resolver: field agents only ever see rows they
// created, admins see everything. Apply it to every inspection/payout query
// before it reaches the store. It deliberately does not apply to the users
// table or to header details.
func OwnedBy(role, userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if role == models.RoleAdmin {
			return db
		}
		return db.Where("created_by_user_id = ?", userID)
	}
}

// CanEdit reports whether the caller may modify a record: its creator, or
// any admin.
func CanEdit(role, userID string, record Owned) bool {
	if role == models.RoleAdmin {
		return true
	}
	return record.OwnerID() == userID
}
