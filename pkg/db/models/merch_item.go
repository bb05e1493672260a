package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchItem is one purchasable good. Size may be empty for sizeless items;
// the (name, size) pair is unique across the catalog.
type MerchItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name       string          `gorm:"column:name;not null;uniqueIndex:merch_items_name_size_key"`
	Size       string          `gorm:"column:size;not null;default:'';uniqueIndex:merch_items_name_size_key"`
	Slug       string          `gorm:"column:slug;not null;uniqueIndex"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Category   *MerchCategory  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Cost       decimal.Decimal `gorm:"column:cost;type:numeric(10,2);not null"`
}

// Label renders the display name, appending the size when present.
func (m MerchItem) Label() string {
	if m.Size == "" {
		return m.Name
	}
	return m.Name + " " + m.Size
}
