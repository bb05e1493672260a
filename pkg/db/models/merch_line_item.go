package models

import "github.com/google/uuid"

// MerchLineItem ties a merch item with a quantity to an application. There is
// deliberately no uniqueness on (application, merch): each row is independent.
type MerchLineItem struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ApplicationID uuid.UUID  `gorm:"column:application_id;type:uuid;not null"`
	MerchID       uuid.UUID  `gorm:"column:merch_id;type:uuid;not null"`
	Merch         *MerchItem `gorm:"foreignKey:MerchID;constraint:OnDelete:CASCADE"`
	Quantity      int        `gorm:"column:quantity;not null;default:1"`
}
