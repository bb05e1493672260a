package merch

import (
	"context"
	"strings"
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a merch applications repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateApplication(ctx context.Context, app *models.MerchApplication) (*models.MerchApplication, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (r *repository) CreateLineItems(ctx context.Context, items []models.MerchLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *repository) DeleteLineItemsByApplication(ctx context.Context, applicationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Delete(&models.MerchLineItem{}).Error
}

func (r *repository) FindApplication(ctx context.Context, id uuid.UUID) (*models.MerchApplication, error) {
	var app models.MerchApplication
	err := r.db.WithContext(ctx).
		Preload("Ambassador").
		Preload("Tutor").
		Preload("LineItems.Merch").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) UpdateApplication(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.MerchApplication{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.MerchApplication{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MerchApplication{}).
		Where("application_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListApplications(ctx context.Context, params pagination.Params, filters ListFilters, ordering Ordering) ([]models.MerchApplication, int64, error) {
	var total int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.MerchApplication{}), filters)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	base := r.applyFilters(r.db.WithContext(ctx).Model(&models.MerchApplication{}), filters)
	query := r.applyOrdering(base, filters, ordering).
		Preload("Ambassador").
		Preload("Tutor").
		Preload("LineItems.Merch").
		Limit(params.Limit).
		Offset(params.Offset())

	var apps []models.MerchApplication
	if err := query.Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *repository) ListByCreatedRange(ctx context.Context, from, to time.Time) ([]models.MerchApplication, error) {
	var apps []models.MerchApplication
	err := r.db.WithContext(ctx).
		Preload("Ambassador").
		Preload("LineItems.Merch").
		Where("created >= ? AND created < ?", from, to).
		Order("created ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if q := strings.TrimSpace(filters.ApplicationNumber); q != "" {
		query = query.Where("LOWER(application_number) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if filters.AmbassadorID != nil {
		query = query.Where("ambassador_id = ?", *filters.AmbassadorID)
	}
	if filters.TutorID != nil {
		query = query.Where("tutor_id = ?", *filters.TutorID)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("created >= ?", *filters.CreatedFrom)
	}
	if filters.CreatedTo != nil {
		query = query.Where("created <= ?", *filters.CreatedTo)
	}
	if len(filters.MerchSlugs) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM merch_line_items li JOIN merch_items mi ON mi.id = li.merch_id WHERE li.application_id = merch_applications.id AND mi.slug IN ?)",
			filters.MerchSlugs,
		)
	}
	return query
}

// applyOrdering builds one ORDER BY clause. When a number query is present,
// prefix matches rank ahead of substring matches before the requested sort.
func (r *repository) applyOrdering(query *gorm.DB, filters ListFilters, ordering Ordering) *gorm.DB {
	column := ordering.Column
	if column == "" {
		column = DefaultOrdering.Column
	}
	direction := "ASC"
	if ordering.Desc {
		direction = "DESC"
	}
	orderSQL := column + " " + direction

	if q := strings.TrimSpace(filters.ApplicationNumber); q != "" {
		return query.Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                "CASE WHEN LOWER(application_number) LIKE ? THEN 0 ELSE 1 END, " + orderSQL,
				Vars:               []any{strings.ToLower(q) + "%"},
				WithoutParentheses: true,
			},
		})
	}
	return query.Order(orderSQL)
}
