package ambassadors

import (
	"context"
	"fmt"
	"testing"

	"github.com/brandcrew/ambassador-crm/pkg/db"
	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/enums"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAmbassadorsService(t *testing.T) (Service, Repository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.AmbassadorStatus{},
		&models.Ambassador{},
	))

	repo := NewRepository(conn)
	svc, err := NewService(repo, db.FromConn(conn))
	require.NoError(t, err)
	return svc, repo, conn
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:         "Alice Runner",
		Gender:       enums.GenderFemale,
		ClothingSize: enums.ClothingSizeM,
		ShoeSize:     "38",
		Email:        "alice@crew.io",
		PhoneNumber:  "+4915200000001",
		Telegram:     "@alice",
		Address: AddressInput{
			PostalCode: "10115",
			Country:    "DE",
			City:       "Berlin",
			Street:     "Torstr. 1",
		},
	}
}

func TestCreateAmbassadorPersistsProfileAndAddress(t *testing.T) {
	svc, _, _ := setupAmbassadorsService(t)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.Equal(t, "Alice Runner", created.Name)
	require.True(t, created.Onboarding, "new profiles start in onboarding")
	require.Equal(t, "Berlin", created.Address.City)
}

func TestCreateAmbassadorValidation(t *testing.T) {
	svc, _, _ := setupAmbassadorsService(t)
	ctx := context.Background()

	cases := map[string]func(*CreateInput){
		"missing name":     func(in *CreateInput) { in.Name = " " },
		"invalid gender":   func(in *CreateInput) { in.Gender = enums.Gender("other") },
		"invalid size":     func(in *CreateInput) { in.ClothingSize = enums.ClothingSize("XXL") },
		"missing email":    func(in *CreateInput) { in.Email = "" },
		"missing phone":    func(in *CreateInput) { in.PhoneNumber = "" },
		"missing telegram": func(in *CreateInput) { in.Telegram = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validCreateInput()
			mutate(&input)
			_, err := svc.Create(ctx, input)
			require.Error(t, err)
			require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestUpdateAmbassadorPartialFields(t *testing.T) {
	svc, _, conn := setupAmbassadorsService(t)
	ctx := context.Background()

	tutor := models.User{ID: uuid.New(), Email: "tutor@crew.io", FirstName: "Tina", LastName: "Mentor"}
	require.NoError(t, conn.Create(&tutor).Error)

	created, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	job := "designer"
	done := false
	updated, err := svc.Update(ctx, created.ID, UpdateInput{
		Job:        &job,
		Onboarding: &done,
		TutorID:    &tutor.ID,
		Address:    &AddressInput{PostalCode: "20095", Country: "DE", City: "Hamburg", Street: "Alstertor 2"},
	})
	require.NoError(t, err)
	require.Equal(t, "designer", updated.Job)
	require.False(t, updated.Onboarding)
	require.Equal(t, "Tina Mentor", updated.TutorName)
	require.Equal(t, "Hamburg", updated.Address.City)
	// untouched fields survive
	require.Equal(t, "Alice Runner", updated.Name)
	require.Equal(t, "@alice", updated.Telegram)
}

func TestUpdateAmbassadorNotFound(t *testing.T) {
	svc, _, _ := setupAmbassadorsService(t)

	name := "Nobody"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListAmbassadorsFilters(t *testing.T) {
	svc, _, conn := setupAmbassadorsService(t)
	ctx := context.Background()

	tutor := models.User{ID: uuid.New(), Email: "tutor@crew.io", FirstName: "Tina", LastName: "Mentor"}
	require.NoError(t, conn.Create(&tutor).Error)
	status := models.AmbassadorStatus{ID: uuid.New(), Name: "Active", Slug: "active"}
	require.NoError(t, conn.Create(&status).Error)

	first := validCreateInput()
	first.TutorID = &tutor.ID
	first.StatusID = &status.ID
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validCreateInput()
	second.Name = "Bob Walker"
	second.Email = "bob@crew.io"
	second.Telegram = "@bob"
	created, err := svc.Create(ctx, second)
	require.NoError(t, err)

	done := false
	_, err = svc.Update(ctx, created.ID, UpdateInput{Onboarding: &done})
	require.NoError(t, err)

	params := pagination.Params{Page: 1, Limit: 10}

	page, err := svc.List(ctx, params, ListFilters{Query: "alice"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)
	require.Equal(t, "Alice Runner", page.Items[0].Name)

	page, err = svc.List(ctx, params, ListFilters{TutorID: &tutor.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)

	page, err = svc.List(ctx, params, ListFilters{StatusSlug: "active"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)

	onboarding := true
	page, err = svc.List(ctx, params, ListFilters{Onboarding: &onboarding})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Meta.Count)
	require.Equal(t, "Alice Runner", page.Items[0].Name)
}

func TestListByIDsDropsUnknown(t *testing.T) {
	svc, repo, _ := setupAmbassadorsService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	out, err := repo.ListByIDs(ctx, []uuid.UUID{created.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, created.ID, out[0].ID)

	all, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestDeleteAmbassador(t *testing.T) {
	svc, _, _ := setupAmbassadorsService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.Delete(ctx, created.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
