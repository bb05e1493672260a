package ambassadors

import (
	"context"
	"strings"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines persistence operations for ambassador profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Create(ctx context.Context, ambassador *models.Ambassador) (*models.Ambassador, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Ambassador, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Ambassador, int64, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ambassador, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an ambassadors repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *repository) UpdateAddress(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Create(ctx context.Context, ambassador *models.Ambassador) (*models.Ambassador, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ambassador).Error; err != nil {
		return nil, err
	}
	return ambassador, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Ambassador, error) {
	var ambassador models.Ambassador
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("Tutor").
		Preload("Status").
		Where("id = ?", id).
		First(&ambassador).Error
	if err != nil {
		return nil, err
	}
	return &ambassador, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Ambassador{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Ambassador{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Ambassador, int64, error) {
	var total int64
	if err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Ambassador{}), filters).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Ambassador
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Ambassador{}), filters).
		Preload("Address").
		Preload("Tutor").
		Preload("Status").
		Order("name ASC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ambassador, error) {
	query := r.db.WithContext(ctx).Model(&models.Ambassador{})
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	var out []models.Ambassador
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(telegram) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filters.TutorID != nil {
		query = query.Where("tutor_id = ?", *filters.TutorID)
	}
	if filters.StatusSlug != "" {
		query = query.Where(
			"status_id IN (SELECT id FROM ambassador_statuses WHERE slug = ?)",
			filters.StatusSlug,
		)
	}
	if filters.Onboarding != nil {
		query = query.Where("onboarding = ?", *filters.Onboarding)
	}
	return query
}
