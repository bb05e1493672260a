package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogService(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.MerchCategory{}, &models.MerchItem{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestCreateCategorySlugifiesName(t *testing.T) {
	svc := setupCatalogService(t)

	category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Летний мерч"})
	require.NoError(t, err)
	require.NotEmpty(t, category.Slug)
	require.NotContains(t, category.Slug, " ")

	_, err = svc.CreateCategory(context.Background(), CategoryInput{Name: "Летний мерч"})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreateItemEnforcesNameSizeUniqueness(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Apparel"})
	require.NoError(t, err)

	base := ItemInput{Name: "Hoodie", Size: "M", CategoryID: category.ID, Cost: decimal.RequireFromString("25.50")}
	item, err := svc.CreateItem(ctx, base)
	require.NoError(t, err)
	require.Equal(t, "hoodie-m", item.Slug)
	require.Equal(t, "Apparel", item.Category.Name)

	_, err = svc.CreateItem(ctx, base)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	// same name, different size is allowed
	other := base
	other.Size = "L"
	_, err = svc.CreateItem(ctx, other)
	require.NoError(t, err)
}

func TestCreateItemValidation(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Apparel"})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, ItemInput{Size: "M", CategoryID: category.ID})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.CreateItem(ctx, ItemInput{Name: "Cap", CategoryID: category.ID, Cost: decimal.RequireFromString("-1")})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.CreateItem(ctx, ItemInput{Name: "Cap", CategoryID: uuid.New()})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListItemsFilters(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	apparel, err := svc.CreateCategory(ctx, CategoryInput{Name: "Apparel"})
	require.NoError(t, err)
	printed, err := svc.CreateCategory(ctx, CategoryInput{Name: "Printed"})
	require.NoError(t, err)

	mustCreate := func(name, size, cost string, categoryID uuid.UUID) {
		t.Helper()
		_, err := svc.CreateItem(ctx, ItemInput{Name: name, Size: size, CategoryID: categoryID, Cost: decimal.RequireFromString(cost)})
		require.NoError(t, err)
	}
	mustCreate("Hoodie", "M", "25.50", apparel.ID)
	mustCreate("Hoodie", "L", "27.00", apparel.ID)
	mustCreate("Sticker", "", "0.75", printed.ID)

	params := pagination.Params{Page: 1, Limit: 10}

	page, err := svc.ListItems(ctx, params, ItemFilters{Query: "hood"})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Meta.Count)

	page, err = svc.ListItems(ctx, params, ItemFilters{CategorySlug: printed.Slug})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)
	require.Equal(t, "Sticker", page.Items[0].Name)

	page, err = svc.ListItems(ctx, params, ItemFilters{Size: "L"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)

	min := decimal.RequireFromString("1.00")
	max := decimal.RequireFromString("26.00")
	page, err = svc.ListItems(ctx, params, ItemFilters{CostMin: &min, CostMax: &max})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)
	require.Equal(t, "M", page.Items[0].Size)
}

func TestUpdateItemRecomputesSlug(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Apparel"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, ItemInput{Name: "Hoodie", Size: "M", CategoryID: category.ID, Cost: decimal.RequireFromString("25.50")})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, ItemInput{Name: "Zip Hoodie", Size: "M", CategoryID: category.ID, Cost: decimal.RequireFromString("30.00")})
	require.NoError(t, err)
	require.Equal(t, "zip-hoodie-m", updated.Slug)
	require.True(t, updated.Cost.Equal(decimal.RequireFromString("30.00")))
}

func TestDeleteItem(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Apparel"})
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, ItemInput{Name: "Cap", CategoryID: category.ID, Cost: decimal.RequireFromString("5.00")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	_, err = svc.GetItem(ctx, item.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.DeleteItem(ctx, item.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
