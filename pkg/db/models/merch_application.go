package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationNumberMaxLen caps caller-supplied application numbers. The
// column is TEXT for sqlite portability, so the limit is enforced in code.
const ApplicationNumberMaxLen = 50

// MerchApplication is one request to ship a bundle of merch to an ambassador.
// Created is a business timestamp: it defaults to submission time but stays
// editable, and the budget report partitions on it.
type MerchApplication struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ApplicationNumber string          `gorm:"column:application_number;not null;uniqueIndex:merch_applications_application_number_key"`
	AmbassadorID      uuid.UUID       `gorm:"column:ambassador_id;type:uuid;not null"`
	Ambassador        *Ambassador     `gorm:"foreignKey:AmbassadorID;constraint:OnDelete:CASCADE"`
	TutorID           uuid.UUID       `gorm:"column:tutor_id;type:uuid;not null"`
	Tutor             *User           `gorm:"foreignKey:TutorID;constraint:OnDelete:CASCADE"`
	Created           time.Time       `gorm:"column:created;not null"`
	LineItems         []MerchLineItem `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
}
