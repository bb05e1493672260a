package promocodes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db"
	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateInput carries the fields of a new promocode.
type CreateInput struct {
	Code         string
	AmbassadorID uuid.UUID
	Created      *time.Time
}

// ListFilters describe the supported filter knobs for the promocode list.
type ListFilters struct {
	Query        string
	AmbassadorID *uuid.UUID
	IsActive     *bool
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// View is the API shape of a promocode.
type View struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	AmbassadorID   uuid.UUID `json:"ambassador_id"`
	AmbassadorName string    `json:"ambassador_name,omitempty"`
	Created        time.Time `json:"created"`
	IsActive       bool      `json:"is_active"`
}

// Page wraps one page of promocodes.
type Page struct {
	Items []View          `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// Repository defines persistence operations for promocodes.
type Repository interface {
	Create(ctx context.Context, code *models.Promocode) (*models.Promocode, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Promocode, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Promocode, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a promocodes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, code *models.Promocode) (*models.Promocode, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(code).Error; err != nil {
		return nil, err
	}
	return code, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Promocode, error) {
	var code models.Promocode
	err := r.db.WithContext(ctx).
		Preload("Ambassador").
		Where("id = ?", id).
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Promocode, int64, error) {
	var total int64
	if err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Promocode{}), filters).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var codes []models.Promocode
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Promocode{}), filters).
		Preload("Ambassador").
		Order("created DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&codes).Error
	if err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if q := strings.TrimSpace(filters.Query); q != "" {
		query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if filters.AmbassadorID != nil {
		query = query.Where("ambassador_id = ?", *filters.AmbassadorID)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("created >= ?", *filters.CreatedFrom)
	}
	if filters.CreatedTo != nil {
		query = query.Where("created <= ?", *filters.CreatedTo)
	}
	return query
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Promocode{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Promocode{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Service defines promocode operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*Page, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a promocodes service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promocodes repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code required")
	}
	if input.AmbassadorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ambassador id required")
	}

	created := time.Now().UTC()
	if input.Created != nil {
		created = input.Created.UTC()
	}

	row := &models.Promocode{
		ID:           uuid.New(),
		Code:         code,
		AmbassadorID: input.AmbassadorID,
		Created:      created,
		IsActive:     true,
	}
	if _, err := s.repo.Create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "promocode already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create promocode")
	}
	return s.Get(ctx, row.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promocode id required")
	}
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promocode not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promocode")
	}
	v := view(row)
	return &v, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*Page, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	params.Page = pagination.NormalizePage(params.Page)

	codes, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list promocodes")
	}

	page := &Page{
		Items: make([]View, 0, len(codes)),
		Meta:  pagination.MetaFor(total, params),
	}
	for i := range codes {
		page.Items = append(page.Items, view(&codes[i]))
	}
	return page, nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*View, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promocode id required")
	}
	if _, err := s.repo.Find(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promocode not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promocode")
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": active}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update promocode")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "promocode id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "promocode not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete promocode")
	}
	return nil
}

func view(code *models.Promocode) View {
	v := View{
		ID:           code.ID,
		Code:         code.Code,
		AmbassadorID: code.AmbassadorID,
		Created:      code.Created,
		IsActive:     code.IsActive,
	}
	if code.Ambassador != nil {
		v.AmbassadorName = code.Ambassador.Name
	}
	return v
}
