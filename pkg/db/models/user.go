package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a staff member (tutor/curator) who manages ambassadors. Account
// provisioning and authentication live in the surrounding identity service;
// this table only mirrors what the CRM needs for references and display.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// FullName joins the first and last names for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
