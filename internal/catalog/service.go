package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brandcrew/ambassador-crm/pkg/db"
	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Service defines merch catalog operations.
type Service interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*CategoryView, error)
	ListCategories(ctx context.Context) ([]CategoryView, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateItem(ctx context.Context, input ItemInput) (*ItemView, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListItems(ctx context.Context, params pagination.Params, filters ItemFilters) (*ItemPage, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*ItemView, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*CategoryView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	category := &models.MerchCategory{
		ID:   uuid.New(),
		Name: name,
		Slug: slug.Make(name),
	}
	if _, err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	view := categoryView(category)
	return &view, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, categoryView(&categories[i]))
	}
	return views, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) CreateItem(ctx context.Context, input ItemInput) (*ItemView, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindCategory(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	item := &models.MerchItem{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		Size:       strings.TrimSpace(input.Size),
		CategoryID: input.CategoryID,
		Cost:       input.Cost,
	}
	item.Slug = itemSlug(item.Name, item.Size)

	if _, err := s.repo.CreateItem(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "merch item with this name and size already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create merch item")
	}
	return s.GetItem(ctx, item.ID)
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merch item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merch item")
	}
	view := itemView(item)
	return &view, nil
}

func (s *service) ListItems(ctx context.Context, params pagination.Params, filters ItemFilters) (*ItemPage, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	params.Page = pagination.NormalizePage(params.Page)

	items, total, err := s.repo.ListItems(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list merch items")
	}

	page := &ItemPage{
		Items: make([]ItemView, 0, len(items)),
		Meta:  pagination.MetaFor(total, params),
	}
	for i := range items {
		page.Items = append(page.Items, itemView(&items[i]))
	}
	return page, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*ItemView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if err := validateItemInput(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merch item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merch item")
	}

	name := strings.TrimSpace(input.Name)
	size := strings.TrimSpace(input.Size)
	updates := map[string]any{
		"name":        name,
		"size":        size,
		"slug":        itemSlug(name, size),
		"category_id": input.CategoryID,
		"cost":        input.Cost,
	}
	if err := s.repo.UpdateItem(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "merch item with this name and size already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update merch item")
	}
	return s.GetItem(ctx, id)
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "merch item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete merch item")
	}
	return nil
}

func validateItemInput(input ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item name required")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.Cost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
	}
	return nil
}

func itemSlug(name, size string) string {
	if size == "" {
		return slug.Make(name)
	}
	return slug.Make(name + " " + size)
}

func categoryView(category *models.MerchCategory) CategoryView {
	return CategoryView{ID: category.ID, Name: category.Name, Slug: category.Slug}
}

func itemView(item *models.MerchItem) ItemView {
	view := ItemView{
		ID:   item.ID,
		Name: item.Name,
		Size: item.Size,
		Slug: item.Slug,
		Cost: item.Cost,
	}
	if item.Category != nil {
		view.Category = categoryView(item.Category)
	} else {
		view.Category = CategoryView{ID: item.CategoryID}
	}
	return view
}
