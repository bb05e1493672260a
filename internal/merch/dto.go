package merch

import (
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilters describe the inputs supported by the applications list.
type ListFilters struct {
	// ApplicationNumber matches case-insensitively anywhere in the number;
	// rows whose number starts with the query sort ahead of the rest.
	ApplicationNumber string
	AmbassadorID      *uuid.UUID
	TutorID           *uuid.UUID
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	// MerchSlugs keeps applications containing at least one of the slugs.
	MerchSlugs []string
}

// Ordering is a validated sort instruction for the applications list.
type Ordering struct {
	Column string
	Desc   bool
}

// CreateInput carries the fields needed to submit an application.
// ApplicationNumber is normally left empty and generated server-side.
type CreateInput struct {
	AmbassadorID      uuid.UUID
	TutorID           uuid.UUID
	ApplicationNumber string
	Created           *time.Time
	LineItems         []LineItemInput
}

// UpdateInput is a partial patch. Nil fields keep their stored value; a
// non-nil LineItems replaces the stored set wholesale. The tutor is always
// reassigned to the caller submitting the patch.
type UpdateInput struct {
	TutorID           uuid.UUID
	AmbassadorID      *uuid.UUID
	ApplicationNumber *string
	Created           *time.Time
	LineItems         []LineItemInput
}

// LineItemInput is one requested merch position.
type LineItemInput struct {
	MerchID  uuid.UUID
	Quantity int
}

// PersonRef is a compact reference to an ambassador or tutor.
type PersonRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// LineItemView is one line of an application with its current cost.
type LineItemView struct {
	ID       uuid.UUID       `json:"id"`
	MerchID  uuid.UUID       `json:"merch_id"`
	Name     string          `json:"name"`
	Size     string          `json:"size,omitempty"`
	Slug     string          `json:"slug"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// Application is the API shape of a merch application. MerchCost is always
// recomputed from current catalog prices, never stored.
type Application struct {
	ID                uuid.UUID       `json:"id"`
	ApplicationNumber string          `json:"application_number"`
	Ambassador        PersonRef       `json:"ambassador"`
	Tutor             PersonRef       `json:"tutor"`
	Created           time.Time       `json:"created"`
	LineItems         []LineItemView  `json:"line_items"`
	MerchCost         decimal.Decimal `json:"merch_cost"`
}

// ApplicationPage wraps one page of applications.
type ApplicationPage struct {
	Items []Application   `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// ApplicationView converts a loaded model into the API shape.
func ApplicationView(app *models.MerchApplication) Application {
	view := Application{
		ID:                app.ID,
		ApplicationNumber: app.ApplicationNumber,
		Created:           app.Created,
		LineItems:         make([]LineItemView, 0, len(app.LineItems)),
		MerchCost:         decimal.Zero,
	}
	if app.Ambassador != nil {
		view.Ambassador = PersonRef{ID: app.Ambassador.ID, Name: app.Ambassador.Name}
	} else {
		view.Ambassador = PersonRef{ID: app.AmbassadorID}
	}
	if app.Tutor != nil {
		view.Tutor = PersonRef{ID: app.Tutor.ID, Name: app.Tutor.FullName()}
	} else {
		view.Tutor = PersonRef{ID: app.TutorID}
	}
	for _, li := range app.LineItems {
		item := LineItemView{
			ID:       li.ID,
			MerchID:  li.MerchID,
			Quantity: li.Quantity,
		}
		if li.Merch != nil {
			item.Name = li.Merch.Name
			item.Size = li.Merch.Size
			item.Slug = li.Merch.Slug
			item.UnitCost = li.Merch.Cost
			item.Cost = li.Merch.Cost.Mul(decimal.NewFromInt(int64(li.Quantity)))
		}
		view.MerchCost = view.MerchCost.Add(item.Cost)
		view.LineItems = append(view.LineItems, item)
	}
	return view
}

// Cost sums quantity times current unit cost over the loaded line items.
func Cost(app *models.MerchApplication) decimal.Decimal {
	total := decimal.Zero
	for _, li := range app.LineItems {
		if li.Merch == nil {
			continue
		}
		total = total.Add(li.Merch.Cost.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return total
}
