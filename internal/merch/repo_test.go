package merch

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db"
	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/enums"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type merchFixtures struct {
	tutor      models.User
	otherTutor models.User
	ambassador models.Ambassador
	other      models.Ambassador
	hoodie     models.MerchItem
	sticker    models.MerchItem
	shopper    models.MerchItem
}

func setupMerchTestDB(t *testing.T) (*gorm.DB, merchFixtures) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.AmbassadorStatus{},
		&models.Ambassador{},
		&models.MerchCategory{},
		&models.MerchItem{},
		&models.MerchApplication{},
		&models.MerchLineItem{},
	))

	fx := merchFixtures{
		tutor:      models.User{ID: uuid.New(), Email: "tutor@crew.io", FirstName: "Tina", LastName: "Mentor"},
		otherTutor: models.User{ID: uuid.New(), Email: "tutor2@crew.io", FirstName: "Oleg", LastName: "Side"},
	}
	require.NoError(t, conn.Create(&fx.tutor).Error)
	require.NoError(t, conn.Create(&fx.otherTutor).Error)

	address := models.Address{ID: uuid.New(), PostalCode: "10115", Country: "DE", City: "Berlin", Street: "Torstr. 1"}
	require.NoError(t, conn.Create(&address).Error)

	fx.ambassador = models.Ambassador{
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
	fx.other = models.Ambassador{
		ID:           uuid.New(),
		Name:         "Bob Walker",
		Gender:       enums.GenderMale,
		ClothingSize: enums.ClothingSizeL,
		ShoeSize:     "44",
		Email:        "bob@crew.io",
		PhoneNumber:  "+4915200000002",
		Telegram:     "@bob",
		AddressID:    address.ID,
	}
	require.NoError(t, conn.Create(&fx.ambassador).Error)
	require.NoError(t, conn.Create(&fx.other).Error)

	category := models.MerchCategory{ID: uuid.New(), Name: "Apparel", Slug: "apparel"}
	require.NoError(t, conn.Create(&category).Error)

	fx.hoodie = models.MerchItem{ID: uuid.New(), Name: "Hoodie", Size: "M", Slug: "hoodie-m", CategoryID: category.ID, Cost: decimal.RequireFromString("25.50")}
	fx.sticker = models.MerchItem{ID: uuid.New(), Name: "Sticker", Slug: "sticker", CategoryID: category.ID, Cost: decimal.RequireFromString("0.75")}
	fx.shopper = models.MerchItem{ID: uuid.New(), Name: "Shopper", Slug: "shopper", CategoryID: category.ID, Cost: decimal.RequireFromString("10.00")}
	require.NoError(t, conn.Create(&fx.hoodie).Error)
	require.NoError(t, conn.Create(&fx.sticker).Error)
	require.NoError(t, conn.Create(&fx.shopper).Error)

	return conn, fx
}

func seedApplication(t *testing.T, repo Repository, number string, ambassadorID, tutorID uuid.UUID, created time.Time, items ...models.MerchLineItem) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	app := &models.MerchApplication{
		ID:                uuid.New(),
		ApplicationNumber: number,
		AmbassadorID:      ambassadorID,
		TutorID:           tutorID,
		Created:           created,
	}
	_, err := repo.CreateApplication(ctx, app)
	require.NoError(t, err)

	for i := range items {
		items[i].ID = uuid.New()
		items[i].ApplicationID = app.ID
	}
	require.NoError(t, repo.CreateLineItems(ctx, items))
	return app.ID
}

func TestCreateAndFindApplicationComputesCost(t *testing.T) {
	conn, fx := setupMerchTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := time.Date(2026, time.February, 2, 10, 0, 0, 0, time.UTC)
	id := seedApplication(t, repo, "2026-02-02-123456", fx.ambassador.ID, fx.tutor.ID, created,
		models.MerchLineItem{MerchID: fx.hoodie.ID, Quantity: 2},
		models.MerchLineItem{MerchID: fx.sticker.ID, Quantity: 10},
	)

	app, err := repo.FindApplication(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, app.Ambassador)
	require.NotNil(t, app.Tutor)
	require.Len(t, app.LineItems, 2)

	view := ApplicationView(app)
	require.Equal(t, "Alice Runner", view.Ambassador.Name)
	require.Equal(t, "Tina Mentor", view.Tutor.Name)
	// 2*25.50 + 10*0.75
	require.True(t, view.MerchCost.Equal(decimal.RequireFromString("58.50")),
		"got cost %s", view.MerchCost)
}

func TestCostReflectsCurrentCatalogPrices(t *testing.T) {
	conn, fx := setupMerchTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	id := seedApplication(t, repo, "2026-02-03-111111", fx.ambassador.ID, fx.tutor.ID, time.Now().UTC(),
		models.MerchLineItem{MerchID: fx.hoodie.ID, Quantity: 1},
	)

	require.NoError(t, conn.Model(&models.MerchItem{}).
		Where("id = ?", fx.hoodie.ID).
		Update("cost", decimal.RequireFromString("30.00")).Error)

	app, err := repo.FindApplication(ctx, id)
	require.NoError(t, err)
	require.True(t, Cost(app).Equal(decimal.RequireFromString("30.00")))
}

func TestListApplicationsFilters(t *testing.T) {
	conn, fx := setupMerchTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2026, time.January, d, 12, 0, 0, 0, time.UTC)
	}
	first := seedApplication(t, repo, "2026-01-05-100001", fx.ambassador.ID, fx.tutor.ID, day(5),
		models.MerchLineItem{MerchID: fx.hoodie.ID, Quantity: 1})
	second := seedApplication(t, repo, "2026-01-10-100001", fx.other.ID, fx.otherTutor.ID, day(10),
		models.MerchLineItem{MerchID: fx.sticker.ID, Quantity: 3})
	third := seedApplication(t, repo, "2026-01-20-555555", fx.ambassador.ID, fx.tutor.ID, day(20),
		models.MerchLineItem{MerchID: fx.shopper.ID, Quantity: 2})

	params := pagination.Params{Page: 1, Limit: 10}
	byNewest := Ordering{Column: "created", Desc: true}

	t.Run("by ambassador", func(t *testing.T) {
		apps, total, err := repo.ListApplications(ctx, params, ListFilters{AmbassadorID: &fx.ambassador.ID}, byNewest)
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
		require.Equal(t, []uuid.UUID{third, first}, idsOf(apps))
	})

	t.Run("by tutor", func(t *testing.T) {
		apps, total, err := repo.ListApplications(ctx, params, ListFilters{TutorID: &fx.otherTutor.ID}, byNewest)
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, []uuid.UUID{second}, idsOf(apps))
	})

	t.Run("created range is inclusive", func(t *testing.T) {
		from, to := day(5), day(10)
		apps, total, err := repo.ListApplications(ctx, params, ListFilters{CreatedFrom: &from, CreatedTo: &to}, byNewest)
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
		require.Equal(t, []uuid.UUID{second, first}, idsOf(apps))
	})

	t.Run("by merch slugs", func(t *testing.T) {
		apps, total, err := repo.ListApplications(ctx, params,
			ListFilters{MerchSlugs: []string{"sticker", "shopper"}}, byNewest)
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
		require.Equal(t, []uuid.UUID{third, second}, idsOf(apps))
	})

	t.Run("number substring match is case-insensitive", func(t *testing.T) {
		apps, total, err := repo.ListApplications(ctx, params,
			ListFilters{ApplicationNumber: "100001"}, byNewest)
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
		require.ElementsMatch(t, []uuid.UUID{first, second}, idsOf(apps))
	})

	t.Run("number prefix matches rank first", func(t *testing.T) {
		apps, _, err := repo.ListApplications(ctx, params,
			ListFilters{ApplicationNumber: "2026-01-05"}, byNewest)
		require.NoError(t, err)
		require.NotEmpty(t, apps)
		require.Equal(t, first, apps[0].ID)
	})

	t.Run("ascending ordering by number", func(t *testing.T) {
		apps, _, err := repo.ListApplications(ctx, params, ListFilters{},
			Ordering{Column: "application_number"})
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{first, second, third}, idsOf(apps))
	})

	t.Run("zero ordering falls back to id ascending", func(t *testing.T) {
		expected := []uuid.UUID{first, second, third}
		sort.Slice(expected, func(i, j int) bool {
			return expected[i].String() < expected[j].String()
		})

		apps, _, err := repo.ListApplications(ctx, params, ListFilters{}, Ordering{})
		require.NoError(t, err)
		require.Equal(t, expected, idsOf(apps))
	})

	t.Run("pagination slices pages", func(t *testing.T) {
		apps, total, err := repo.ListApplications(ctx,
			pagination.Params{Page: 2, Limit: 2}, ListFilters{}, byNewest)
		require.NoError(t, err)
		require.EqualValues(t, 3, total)
		require.Len(t, apps, 1)
		require.Equal(t, first, apps[0].ID)
	})
}

func TestNumberExists(t *testing.T) {
	conn, fx := setupMerchTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedApplication(t, repo, "2026-03-01-777777", fx.ambassador.ID, fx.tutor.ID, time.Now().UTC())

	taken, err := repo.NumberExists(ctx, "2026-03-01-777777")
	require.NoError(t, err)
	require.True(t, taken)

	free, err := repo.NumberExists(ctx, "2026-03-01-777778")
	require.NoError(t, err)
	require.False(t, free)
}

func TestListByCreatedRangeHalfOpen(t *testing.T) {
	conn, fx := setupMerchTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	inside := seedApplication(t, repo, "2026-12-31-000001", fx.ambassador.ID, fx.tutor.ID,
		time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC))
	seedApplication(t, repo, "2027-01-01-000001", fx.ambassador.ID, fx.tutor.ID,
		time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC))

	apps, err := repo.ListByCreatedRange(ctx,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{inside}, idsOf(apps))
}

func TestLineItemReplaceRollsBackOnFailure(t *testing.T) {
	conn, fx := setupMerchTestDB(t)
	repo := NewRepository(conn)
	client := db.FromConn(conn)
	ctx := context.Background()

	id := seedApplication(t, repo, "2026-04-01-424242", fx.ambassador.ID, fx.tutor.ID, time.Now().UTC(),
		models.MerchLineItem{MerchID: fx.hoodie.ID, Quantity: 1},
		models.MerchLineItem{MerchID: fx.sticker.ID, Quantity: 5},
	)

	duplicate := uuid.New()
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.DeleteLineItemsByApplication(ctx, id); err != nil {
			return err
		}
		// second row re-uses the first primary key to force a failure
		return txRepo.CreateLineItems(ctx, []models.MerchLineItem{
			{ID: duplicate, ApplicationID: id, MerchID: fx.shopper.ID, Quantity: 1},
			{ID: duplicate, ApplicationID: id, MerchID: fx.shopper.ID, Quantity: 2},
		})
	})
	require.Error(t, err)

	app, err := repo.FindApplication(ctx, id)
	require.NoError(t, err)
	require.Len(t, app.LineItems, 2, "original line items must survive a failed replace")
}

func idsOf(apps []models.MerchApplication) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.ID)
	}
	return ids
}
