package models

import "github.com/google/uuid"

// AmbassadorStatus is a slug-keyed lookup row (active, paused, and so on)
// managed from the admin console.
type AmbassadorStatus struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null"`
	Slug string    `gorm:"column:slug;not null;uniqueIndex"`
}
