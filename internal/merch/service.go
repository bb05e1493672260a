package merch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db"
	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MinQuantity and MaxQuantity bound a single line item.
	MinQuantity = 1
	MaxQuantity = 100
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines merch application operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Application, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Application, error)
	Get(ctx context.Context, id uuid.UUID) (*Application, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters, ordering Ordering) (*ApplicationPage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	tx      txRunner
	numbers *NumberGenerator
}

// ServiceParams collects the dependencies of the merch application service.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Numbers *NumberGenerator
}

// NewService builds a merch application service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("merch repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Numbers == nil {
		params.Numbers = NewNumberGenerator(nil, nil)
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		numbers: params.Numbers,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Application, error) {
	if input.AmbassadorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}
	if input.TutorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tutor id required")
	}
	if len(input.LineItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item required")
	}
	if err := validateLineItems(input.LineItems); err != nil {
		return nil, err
	}

	number := input.ApplicationNumber
	if number == "" {
		generated, err := s.numbers.Generate(ctx, s.repo.NumberExists)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate application number")
		}
		number = generated
	} else if err := s.checkNumberFree(ctx, number); err != nil {
		return nil, err
	}

	created := time.Now().UTC()
	if input.Created != nil {
		created = input.Created.UTC()
	}

	app := &models.MerchApplication{
		ID:                uuid.New(),
		ApplicationNumber: number,
		AmbassadorID:      input.AmbassadorID,
		TutorID:           input.TutorID,
		Created:           created,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateApplication(ctx, app); err != nil {
			if db.IsUniqueViolation(err, "merch_applications_application_number_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "application number already taken")
			}
			if db.IsForeignKeyViolation(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, "ambassador or tutor does not exist")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
		}
		if err := repo.CreateLineItems(ctx, buildLineItems(app.ID, input.LineItems)); err != nil {
			if db.IsForeignKeyViolation(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, "referenced merch item does not exist")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, app.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Application, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	if input.TutorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tutor id required")
	}
	if input.AmbassadorID != nil && *input.AmbassadorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}
	if input.LineItems != nil {
		if len(input.LineItems) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item required")
		}
		if err := validateLineItems(input.LineItems); err != nil {
			return nil, err
		}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindApplication(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load application")
		}

		updates := map[string]any{"tutor_id": input.TutorID}
		if input.AmbassadorID != nil {
			updates["ambassador_id"] = *input.AmbassadorID
		}
		if input.ApplicationNumber != nil && *input.ApplicationNumber != current.ApplicationNumber {
			if err := s.checkNumberFree(ctx, *input.ApplicationNumber); err != nil {
				return err
			}
			updates["application_number"] = *input.ApplicationNumber
		}
		if input.Created != nil {
			updates["created"] = input.Created.UTC()
		}
		if err := repo.UpdateApplication(ctx, id, updates); err != nil {
			if db.IsUniqueViolation(err, "merch_applications_application_number_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "application number already taken")
			}
			if db.IsForeignKeyViolation(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, "ambassador or tutor does not exist")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application")
		}

		// a submitted set replaces the stored one wholesale; an omitted
		// set leaves the stored line items alone
		if input.LineItems != nil {
			if err := repo.DeleteLineItemsByApplication(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear line items")
			}
			if err := repo.CreateLineItems(ctx, buildLineItems(id, input.LineItems)); err != nil {
				if db.IsForeignKeyViolation(err) {
					return pkgerrors.New(pkgerrors.CodeValidation, "referenced merch item does not exist")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line items")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Application, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	app, err := s.repo.FindApplication(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load application")
	}
	view := ApplicationView(app)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters, ordering Ordering) (*ApplicationPage, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	params.Page = pagination.NormalizePage(params.Page)

	apps, total, err := s.repo.ListApplications(ctx, params, filters, ordering)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}

	page := &ApplicationPage{
		Items: make([]Application, 0, len(apps)),
		Meta:  pagination.MetaFor(total, params),
	}
	for i := range apps {
		page.Items = append(page.Items, ApplicationView(&apps[i]))
	}
	return page, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteLineItemsByApplication(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear line items")
		}
		if err := repo.DeleteApplication(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete application")
		}
		return nil
	})
}

func (s *service) checkNumberFree(ctx context.Context, number string) error {
	if len(number) > models.ApplicationNumberMaxLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "application number too long")
	}
	taken, err := s.repo.NumberExists(ctx, number)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check application number")
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeValidation, "application number already taken")
	}
	return nil
}

func validateLineItems(items []LineItemInput) error {
	for i, item := range items {
		if item.MerchID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line item %d: merch id required", i))
		}
		if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line item %d: quantity must be between %d and %d", i, MinQuantity, MaxQuantity))
		}
	}
	return nil
}

func buildLineItems(applicationID uuid.UUID, items []LineItemInput) []models.MerchLineItem {
	rows := make([]models.MerchLineItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.MerchLineItem{
			ID:            uuid.New(),
			ApplicationID: applicationID,
			MerchID:       item.MerchID,
			Quantity:      item.Quantity,
		})
	}
	return rows
}
