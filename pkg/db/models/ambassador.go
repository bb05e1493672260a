package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brandcrew/ambassador-crm/pkg/enums"
)

// Ambassador is a program participant eligible to receive merch.
type Ambassador struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name         string             `gorm:"column:name;not null"`
	Gender       enums.Gender       `gorm:"column:gender;type:text;not null"`
	ClothingSize enums.ClothingSize `gorm:"column:clothing_size;type:text;not null"`
	ShoeSize     string             `gorm:"column:shoe_size;not null"`
	Education    string             `gorm:"column:education;not null;default:''"`
	Job          string             `gorm:"column:job;not null;default:''"`
	Email        string             `gorm:"column:email;not null"`
	PhoneNumber  string             `gorm:"column:phone_number;not null"`
	Telegram     string             `gorm:"column:telegram;not null"`
	Whatsapp     *string            `gorm:"column:whatsapp"`
	BlogLink     *string            `gorm:"column:blog_link"`
	AboutMe      *string            `gorm:"column:about_me"`
	Onboarding   bool               `gorm:"column:onboarding;not null;default:true"`
	AddressID    uuid.UUID          `gorm:"column:address_id;type:uuid;not null"`
	Address      *Address           `gorm:"foreignKey:AddressID"`
	TutorID      *uuid.UUID         `gorm:"column:tutor_id;type:uuid"`
	Tutor        *User              `gorm:"foreignKey:TutorID"`
	StatusID     *uuid.UUID         `gorm:"column:status_id;type:uuid"`
	Status       *AmbassadorStatus  `gorm:"foreignKey:StatusID"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
