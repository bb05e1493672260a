package ambassadors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines ambassador profile operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*Page, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an ambassadors service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ambassadors repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	ambassador := &models.Ambassador{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Gender:       input.Gender,
		ClothingSize: input.ClothingSize,
		ShoeSize:     strings.TrimSpace(input.ShoeSize),
		Education:    input.Education,
		Job:          input.Job,
		Email:        strings.TrimSpace(input.Email),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Telegram:     strings.TrimSpace(input.Telegram),
		Whatsapp:     input.Whatsapp,
		BlogLink:     input.BlogLink,
		AboutMe:      input.AboutMe,
		Onboarding:   true,
		TutorID:      input.TutorID,
		StatusID:     input.StatusID,
	}

	// profile and address land together or not at all
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		address := &models.Address{
			ID:         uuid.New(),
			PostalCode: input.Address.PostalCode,
			Country:    input.Address.Country,
			City:       input.Address.City,
			Street:     input.Address.Street,
		}
		if _, err := repo.CreateAddress(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
		}
		ambassador.AddressID = address.ID
		if _, err := repo.Create(ctx, ambassador); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ambassador")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, ambassador.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}
	ambassador, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ambassador not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ambassador")
	}
	v := view(ambassador)
	return &v, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*Page, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	params.Page = pagination.NormalizePage(params.Page)

	out, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ambassadors")
	}

	page := &Page{
		Items: make([]View, 0, len(out)),
		Meta:  pagination.MetaFor(total, params),
	}
	for i := range out {
		page.Items = append(page.Items, view(&out[i]))
	}
	return page, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}
	if input.Gender != nil && !input.Gender.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
	}
	if input.ClothingSize != nil && !input.ClothingSize.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid clothing size")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.Find(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ambassador not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ambassador")
		}

		if err := repo.Update(ctx, id, profileUpdates(input)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ambassador")
		}
		if input.Address != nil {
			updates := map[string]any{
				"postal_code": input.Address.PostalCode,
				"country":     input.Address.Country,
				"city":        input.Address.City,
				"street":      input.Address.Street,
			}
			if err := repo.UpdateAddress(ctx, current.AddressID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ambassador not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete ambassador")
	}
	return nil
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if !input.Gender.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
	}
	if !input.ClothingSize.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid clothing size")
	}
	if strings.TrimSpace(input.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number required")
	}
	if strings.TrimSpace(input.Telegram) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "telegram required")
	}
	return nil
}

func profileUpdates(input UpdateInput) map[string]any {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}
	if input.ClothingSize != nil {
		updates["clothing_size"] = *input.ClothingSize
	}
	if input.ShoeSize != nil {
		updates["shoe_size"] = strings.TrimSpace(*input.ShoeSize)
	}
	if input.Education != nil {
		updates["education"] = *input.Education
	}
	if input.Job != nil {
		updates["job"] = *input.Job
	}
	if input.Email != nil {
		updates["email"] = strings.TrimSpace(*input.Email)
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Telegram != nil {
		updates["telegram"] = strings.TrimSpace(*input.Telegram)
	}
	if input.Whatsapp != nil {
		updates["whatsapp"] = *input.Whatsapp
	}
	if input.BlogLink != nil {
		updates["blog_link"] = *input.BlogLink
	}
	if input.AboutMe != nil {
		updates["about_me"] = *input.AboutMe
	}
	if input.Onboarding != nil {
		updates["onboarding"] = *input.Onboarding
	}
	if input.TutorID != nil {
		updates["tutor_id"] = *input.TutorID
	}
	if input.StatusID != nil {
		updates["status_id"] = *input.StatusID
	}
	return updates
}
