package catalog

import (
	"context"
	"strings"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the merch catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *models.MerchCategory) (*models.MerchCategory, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.MerchCategory, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.MerchCategory, error)
	ListCategories(ctx context.Context) ([]models.MerchCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateItem(ctx context.Context, item *models.MerchItem) (*models.MerchItem, error)
	FindItem(ctx context.Context, id uuid.UUID) (*models.MerchItem, error)
	FindItemBySlug(ctx context.Context, slug string) (*models.MerchItem, error)
	ListItems(ctx context.Context, params pagination.Params, filters ItemFilters) ([]models.MerchItem, int64, error)
	UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCategory(ctx context.Context, category *models.MerchCategory) (*models.MerchCategory, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.MerchCategory, error) {
	var category models.MerchCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.MerchCategory, error) {
	var category models.MerchCategory
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.MerchCategory, error) {
	var categories []models.MerchCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.MerchCategory{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MerchCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.MerchItem) (*models.MerchItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindItem(ctx context.Context, id uuid.UUID) (*models.MerchItem, error) {
	var item models.MerchItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemBySlug(ctx context.Context, slug string) (*models.MerchItem, error) {
	var item models.MerchItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItems(ctx context.Context, params pagination.Params, filters ItemFilters) ([]models.MerchItem, int64, error) {
	var total int64
	if err := r.applyItemFilters(r.db.WithContext(ctx).Model(&models.MerchItem{}), filters).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.MerchItem
	err := r.applyItemFilters(r.db.WithContext(ctx).Model(&models.MerchItem{}), filters).
		Preload("Category").
		Order("name ASC, size ASC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) applyItemFilters(query *gorm.DB, filters ItemFilters) *gorm.DB {
	if filters.Query != "" {
		query = query.Where("LOWER(merch_items.name) LIKE ?", "%"+strings.ToLower(filters.Query)+"%")
	}
	if filters.CategorySlug != "" {
		query = query.Where(
			"category_id IN (SELECT id FROM merch_categories WHERE slug = ?)",
			filters.CategorySlug,
		)
	}
	if filters.Size != "" {
		query = query.Where("size = ?", filters.Size)
	}
	if filters.CostMin != nil {
		query = query.Where("cost >= ?", *filters.CostMin)
	}
	if filters.CostMax != nil {
		query = query.Where("cost <= ?", *filters.CostMax)
	}
	return query
}

func (r *repository) UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.MerchItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MerchItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
