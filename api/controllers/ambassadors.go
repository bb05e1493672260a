package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/brandcrew/ambassador-crm/api/responses"
	"github.com/brandcrew/ambassador-crm/api/validators"
	ambsvc "github.com/brandcrew/ambassador-crm/internal/ambassadors"
	"github.com/brandcrew/ambassador-crm/pkg/enums"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/logger"
)

func CreateAmbassador(svc ambsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ambassador service unavailable"))
			return
		}

		var payload createAmbassadorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

func GetAmbassador(svc ambsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ambassador service unavailable"))
			return
		}

		id, err := pathUUID(r, "ambassadorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

func ListAmbassadors(svc ambsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ambassador service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := ambsvc.ListFilters{
			Query:      r.URL.Query().Get("query"),
			StatusSlug: r.URL.Query().Get("status"),
		}
		if filters.TutorID, err = validators.ParseQueryUUID(r, "tutor"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.Onboarding, err = validators.ParseQueryBool(r, "onboarding"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func UpdateAmbassador(svc ambsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ambassador service unavailable"))
			return
		}

		id, err := pathUUID(r, "ambassadorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAmbassadorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

func DeleteAmbassador(svc ambsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ambassador service unavailable"))
			return
		}

		id, err := pathUUID(r, "ambassadorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type ambassadorAddressRequest struct {
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	City       string `json:"city" validate:"required"`
	Street     string `json:"street" validate:"required"`
}

type createAmbassadorRequest struct {
	Name         string                   `json:"name" validate:"required"`
	Gender       string                   `json:"gender" validate:"required"`
	ClothingSize string                   `json:"clothing_size" validate:"required"`
	ShoeSize     string                   `json:"shoe_size,omitempty"`
	Education    string                   `json:"education,omitempty"`
	Job          string                   `json:"job,omitempty"`
	Email        string                   `json:"email" validate:"required,email"`
	PhoneNumber  string                   `json:"phone_number" validate:"required"`
	Telegram     string                   `json:"telegram" validate:"required"`
	Whatsapp     *string                  `json:"whatsapp,omitempty"`
	BlogLink     *string                  `json:"blog_link,omitempty"`
	AboutMe      *string                  `json:"about_me,omitempty"`
	Address      ambassadorAddressRequest `json:"address" validate:"required"`
	TutorID      *string                  `json:"tutor_id,omitempty" validate:"omitempty,uuid"`
	StatusID     *string                  `json:"status_id,omitempty" validate:"omitempty,uuid"`
}

func (p createAmbassadorRequest) toInput() (ambsvc.CreateInput, error) {
	gender, err := enums.ParseGender(strings.TrimSpace(p.Gender))
	if err != nil {
		return ambsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
	}
	size, err := enums.ParseClothingSize(strings.TrimSpace(p.ClothingSize))
	if err != nil {
		return ambsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid clothing size")
	}
	tutorID, err := optionalUUID(p.TutorID, "tutor_id")
	if err != nil {
		return ambsvc.CreateInput{}, err
	}
	statusID, err := optionalUUID(p.StatusID, "status_id")
	if err != nil {
		return ambsvc.CreateInput{}, err
	}

	return ambsvc.CreateInput{
		Name:         strings.TrimSpace(p.Name),
		Gender:       gender,
		ClothingSize: size,
		ShoeSize:     strings.TrimSpace(p.ShoeSize),
		Education:    strings.TrimSpace(p.Education),
		Job:          strings.TrimSpace(p.Job),
		Email:        strings.TrimSpace(p.Email),
		PhoneNumber:  strings.TrimSpace(p.PhoneNumber),
		Telegram:     strings.TrimSpace(p.Telegram),
		Whatsapp:     p.Whatsapp,
		BlogLink:     p.BlogLink,
		AboutMe:      p.AboutMe,
		Address: ambsvc.AddressInput{
			PostalCode: strings.TrimSpace(p.Address.PostalCode),
			Country:    strings.TrimSpace(p.Address.Country),
			City:       strings.TrimSpace(p.Address.City),
			Street:     strings.TrimSpace(p.Address.Street),
		},
		TutorID:  tutorID,
		StatusID: statusID,
	}, nil
}

type updateAmbassadorRequest struct {
	Name         *string                   `json:"name,omitempty"`
	Gender       *string                   `json:"gender,omitempty"`
	ClothingSize *string                   `json:"clothing_size,omitempty"`
	ShoeSize     *string                   `json:"shoe_size,omitempty"`
	Education    *string                   `json:"education,omitempty"`
	Job          *string                   `json:"job,omitempty"`
	Email        *string                   `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber  *string                   `json:"phone_number,omitempty"`
	Telegram     *string                   `json:"telegram,omitempty"`
	Whatsapp     *string                   `json:"whatsapp,omitempty"`
	BlogLink     *string                   `json:"blog_link,omitempty"`
	AboutMe      *string                   `json:"about_me,omitempty"`
	Onboarding   *bool                     `json:"onboarding,omitempty"`
	Address      *ambassadorAddressRequest `json:"address,omitempty"`
	TutorID      *string                   `json:"tutor_id,omitempty" validate:"omitempty,uuid"`
	StatusID     *string                   `json:"status_id,omitempty" validate:"omitempty,uuid"`
}

func (p updateAmbassadorRequest) toInput() (ambsvc.UpdateInput, error) {
	input := ambsvc.UpdateInput{
		Name:        p.Name,
		ShoeSize:    p.ShoeSize,
		Education:   p.Education,
		Job:         p.Job,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Telegram:    p.Telegram,
		Whatsapp:    p.Whatsapp,
		BlogLink:    p.BlogLink,
		AboutMe:     p.AboutMe,
		Onboarding:  p.Onboarding,
	}

	if p.Gender != nil {
		gender, err := enums.ParseGender(strings.TrimSpace(*p.Gender))
		if err != nil {
			return ambsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
		}
		input.Gender = &gender
	}
	if p.ClothingSize != nil {
		size, err := enums.ParseClothingSize(strings.TrimSpace(*p.ClothingSize))
		if err != nil {
			return ambsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid clothing size")
		}
		input.ClothingSize = &size
	}
	if p.Address != nil {
		input.Address = &ambsvc.AddressInput{
			PostalCode: strings.TrimSpace(p.Address.PostalCode),
			Country:    strings.TrimSpace(p.Address.Country),
			City:       strings.TrimSpace(p.Address.City),
			Street:     strings.TrimSpace(p.Address.Street),
		}
	}

	var err error
	if input.TutorID, err = optionalUUID(p.TutorID, "tutor_id"); err != nil {
		return ambsvc.UpdateInput{}, err
	}
	if input.StatusID, err = optionalUUID(p.StatusID, "status_id"); err != nil {
		return ambsvc.UpdateInput{}, err
	}
	return input, nil
}

func optionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid uuid field").WithDetails(map[string]any{"field": field})
	}
	return &id, nil
}
