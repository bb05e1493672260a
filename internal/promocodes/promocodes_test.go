package promocodes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/enums"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPromocodesService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.AmbassadorStatus{},
		&models.Ambassador{},
		&models.Promocode{},
	))

	address := models.Address{ID: uuid.New(), PostalCode: "10115", Country: "DE", City: "Berlin", Street: "Torstr. 1"}
	require.NoError(t, conn.Create(&address).Error)
	ambassador := models.Ambassador{
		ID:           uuid.New(),
		Name:         "Alice Runner",
		Gender:       enums.GenderFemale,
		ClothingSize: enums.ClothingSizeM,
		ShoeSize:     "38",
		Email:        "alice@crew.io",
		PhoneNumber:  "+4915200000001",
		Telegram:     "@alice",
		AddressID:    address.ID,
	}
	require.NoError(t, conn.Create(&ambassador).Error)

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, ambassador.ID
}

func TestCreatePromocode(t *testing.T) {
	svc, ambassadorID := setupPromocodesService(t)
	ctx := context.Background()

	code, err := svc.Create(ctx, CreateInput{Code: "ALICE15", AmbassadorID: ambassadorID})
	require.NoError(t, err)
	require.Equal(t, "ALICE15", code.Code)
	require.Equal(t, "Alice Runner", code.AmbassadorName)
	require.True(t, code.IsActive, "new codes start active")

	_, err = svc.Create(ctx, CreateInput{Code: "ALICE15", AmbassadorID: ambassadorID})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, CreateInput{Code: " ", AmbassadorID: ambassadorID})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, CreateInput{Code: "NOBODY"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListPromocodesFilters(t *testing.T) {
	svc, ambassadorID := setupPromocodesService(t)
	ctx := context.Background()

	early := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, CreateInput{Code: "ALICE15", AmbassadorID: ambassadorID, Created: &early})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateInput{Code: "SUMMER10", AmbassadorID: ambassadorID})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, second.ID, false)
	require.NoError(t, err)

	params := pagination.Params{Page: 1, Limit: 10}

	page, err := svc.List(ctx, params, ListFilters{Query: "alice"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)
	require.Equal(t, "ALICE15", page.Items[0].Code)

	active := true
	page, err = svc.List(ctx, params, ListFilters{IsActive: &active})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)
	require.Equal(t, "ALICE15", page.Items[0].Code)

	page, err = svc.List(ctx, params, ListFilters{AmbassadorID: &ambassadorID})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Meta.Count)
	// newest first
	require.Equal(t, "SUMMER10", page.Items[0].Code)
}

func TestSetActiveAndDelete(t *testing.T) {
	svc, ambassadorID := setupPromocodesService(t)
	ctx := context.Background()

	code, err := svc.Create(ctx, CreateInput{Code: "ALICE15", AmbassadorID: ambassadorID})
	require.NoError(t, err)

	updated, err := svc.SetActive(ctx, code.ID, false)
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	_, err = svc.SetActive(ctx, uuid.New(), true)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	require.NoError(t, svc.Delete(ctx, code.ID))
	err = svc.Delete(ctx, code.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
