package controllers

import (
	"loanportal-backend/models"

	"gorm.io/gorm"
)

// creatorNames returns a user_id -> full_name map for labeling report rows.
// A read failure here only costs the labels, not the page.
func creatorNames(db *gorm.DB) map[string]string {
	var users []models.User
	if err := db.Select("id", "full_name").Find(&users).Error; err != nil {
		return map[string]string{}
	}
	m := make(map[string]string, len(users))
	for _, u := range users {
		m[u.Id] = u.FullName
	}
	return m
}

func nameOr(names map[string]string, userID string) string {
	if n, ok := names[userID]; ok && n != "" {
		return n
	}
	return "Unknown"
}
