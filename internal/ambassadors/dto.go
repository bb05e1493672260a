package ambassadors

import (
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/enums"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
)

// AddressInput is the shipping address submitted with a profile.
type AddressInput struct {
	PostalCode string
	Country    string
	City       string
	Street     string
}

// CreateInput carries the fields of a new ambassador profile.
type CreateInput struct {
	Name         string
	Gender       enums.Gender
	ClothingSize enums.ClothingSize
	ShoeSize     string
	Education    string
	Job          string
	Email        string
	PhoneNumber  string
	Telegram     string
	Whatsapp     *string
	BlogLink     *string
	AboutMe      *string
	Address      AddressInput
	TutorID      *uuid.UUID
	StatusID     *uuid.UUID
}

// UpdateInput is a partial profile update. Nil fields stay untouched.
type UpdateInput struct {
	Name         *string
	Gender       *enums.Gender
	ClothingSize *enums.ClothingSize
	ShoeSize     *string
	Education    *string
	Job          *string
	Email        *string
	PhoneNumber  *string
	Telegram     *string
	Whatsapp     *string
	BlogLink     *string
	AboutMe      *string
	Onboarding   *bool
	Address      *AddressInput
	TutorID      *uuid.UUID
	StatusID     *uuid.UUID
}

// ListFilters describe the supported filter knobs for the profile list.
type ListFilters struct {
	Query      string
	TutorID    *uuid.UUID
	StatusSlug string
	Onboarding *bool
}

// AddressView is the API shape of a shipping address.
type AddressView struct {
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
}

// View is the API shape of an ambassador profile.
type View struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Gender       enums.Gender       `json:"gender"`
	ClothingSize enums.ClothingSize `json:"clothing_size"`
	ShoeSize     string             `json:"shoe_size"`
	Education    string             `json:"education,omitempty"`
	Job          string             `json:"job,omitempty"`
	Email        string             `json:"email"`
	PhoneNumber  string             `json:"phone_number"`
	Telegram     string             `json:"telegram"`
	Whatsapp     *string            `json:"whatsapp,omitempty"`
	BlogLink     *string            `json:"blog_link,omitempty"`
	AboutMe      *string            `json:"about_me,omitempty"`
	Onboarding   bool               `json:"onboarding"`
	Address      AddressView        `json:"address"`
	TutorID      *uuid.UUID         `json:"tutor_id,omitempty"`
	TutorName    string             `json:"tutor_name,omitempty"`
	StatusSlug   string             `json:"status,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Page wraps one page of ambassador profiles.
type Page struct {
	Items []View          `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

func view(amb *models.Ambassador) View {
	v := View{
		ID:           amb.ID,
		Name:         amb.Name,
		Gender:       amb.Gender,
		ClothingSize: amb.ClothingSize,
		ShoeSize:     amb.ShoeSize,
		Education:    amb.Education,
		Job:          amb.Job,
		Email:        amb.Email,
		PhoneNumber:  amb.PhoneNumber,
		Telegram:     amb.Telegram,
		Whatsapp:     amb.Whatsapp,
		BlogLink:     amb.BlogLink,
		AboutMe:      amb.AboutMe,
		Onboarding:   amb.Onboarding,
		TutorID:      amb.TutorID,
		CreatedAt:    amb.CreatedAt,
	}
	if amb.Address != nil {
		v.Address = AddressView{
			PostalCode: amb.Address.PostalCode,
			Country:    amb.Address.Country,
			City:       amb.Address.City,
			Street:     amb.Address.Street,
		}
	}
	if amb.Tutor != nil {
		v.TutorName = amb.Tutor.FullName()
	}
	if amb.Status != nil {
		v.StatusSlug = amb.Status.Slug
	}
	return v
}
