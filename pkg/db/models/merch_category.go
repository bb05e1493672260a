package models

import "github.com/google/uuid"

// MerchCategory groups catalog items (hoodies, stickers, shoppers...).
type MerchCategory struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
	Slug string    `gorm:"column:slug;not null;uniqueIndex"`
}
