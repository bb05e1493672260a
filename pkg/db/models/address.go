package models

import "github.com/google/uuid"

// Address is an ambassador's shipping address.
type Address struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PostalCode string    `gorm:"column:postal_code;not null"`
	Country    string    `gorm:"column:country;not null"`
	City       string    `gorm:"column:city;not null"`
	Street     string    `gorm:"column:street;not null"`
}
