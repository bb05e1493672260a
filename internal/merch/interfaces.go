package merch

import (
	"context"
	"time"

	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	"github.com/brandcrew/ambassador-crm/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for merch applications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateApplication(ctx context.Context, app *models.MerchApplication) (*models.MerchApplication, error)
	CreateLineItems(ctx context.Context, items []models.MerchLineItem) error
	DeleteLineItemsByApplication(ctx context.Context, applicationID uuid.UUID) error
	FindApplication(ctx context.Context, id uuid.UUID) (*models.MerchApplication, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
	ListApplications(ctx context.Context, params pagination.Params, filters ListFilters, ordering Ordering) ([]models.MerchApplication, int64, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	ListByCreatedRange(ctx context.Context, from, to time.Time) ([]models.MerchApplication, error)
}
