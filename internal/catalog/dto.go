package catalog

import (
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryInput carries the fields needed to create or rename a category.
type CategoryInput struct {
	Name string
}

// CategoryView is the API shape of a merch category.
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ItemInput carries the fields needed to create or update a merch item.
type ItemInput struct {
	Name       string
	Size       string
	CategoryID uuid.UUID
	Cost       decimal.Decimal
}

// ItemView is the API shape of a merch item.
type ItemView struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Size     string          `json:"size,omitempty"`
	Slug     string          `json:"slug"`
	Category CategoryView    `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
}

// ItemFilters describe the supported filter knobs for the item list.
type ItemFilters struct {
	Query        string
	CategorySlug string
	Size         string
	CostMin      *decimal.Decimal
	CostMax      *decimal.Decimal
}

// ItemPage wraps one page of merch items.
type ItemPage struct {
	Items []ItemView      `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}
