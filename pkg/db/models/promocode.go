package models

import (
	"time"

	"github.com/google/uuid"
)

// Promocode is a discount code issued to an ambassador.
type Promocode struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	Code         string      `gorm:"column:code;not null;uniqueIndex"`
	AmbassadorID uuid.UUID   `gorm:"column:ambassador_id;type:uuid;not null"`
	Ambassador   *Ambassador `gorm:"foreignKey:AmbassadorID;constraint:OnDelete:CASCADE"`
	Created      time.Time   `gorm:"column:created;not null"`
	IsActive     bool        `gorm:"column:is_active;not null;default:true"`
}
