package budget

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/brandcrew/ambassador-crm/internal/merch"
	"github.com/brandcrew/ambassador-crm/pkg/db/models"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// yearRe accepts 4-digit years in the 1000-2999 range, matching the admin
// console's input mask. Anything else selects no rows instead of erroring.
var yearRe = regexp.MustCompile(`^[1-2][0-9]{3}$`)

// ApplicationSource reads applications with their line items and prices
// attached. Satisfied by the merch repository.
type ApplicationSource interface {
	ListByCreatedRange(ctx context.Context, from, to time.Time) ([]models.MerchApplication, error)
}

// AmbassadorDirectory resolves the ambassador universe for a report.
// An empty id set means all known ambassadors; unknown ids are dropped.
type AmbassadorDirectory interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ambassador, error)
}

// Service computes budget reports.
type Service interface {
	ComputeYearBudget(ctx context.Context, year string, ambassadorIDs []uuid.UUID) (*YearReport, error)
}

type service struct {
	applications ApplicationSource
	ambassadors  AmbassadorDirectory
}

// ServiceParams collects the dependencies of the budget service.
type ServiceParams struct {
	Applications ApplicationSource
	Ambassadors  AmbassadorDirectory
}

// NewService builds a budget service.
func NewService(params ServiceParams) (Service, error) {
	if params.Applications == nil {
		return nil, fmt.Errorf("application source required")
	}
	if params.Ambassadors == nil {
		return nil, fmt.Errorf("ambassador directory required")
	}
	return &service{
		applications: params.Applications,
		ambassadors:  params.Ambassadors,
	}, nil
}

type ambassadorTotals struct {
	name   string
	total  decimal.Decimal
	months [12]decimal.Decimal
}

// ComputeYearBudget folds the year's applications into the nested report.
// It returns (nil, nil) for a malformed year or a zero total: both render
// as an empty result, never as an error.
func (s *service) ComputeYearBudget(ctx context.Context, year string, ambassadorIDs []uuid.UUID) (*YearReport, error) {
	if !yearRe.MatchString(year) {
		return nil, nil
	}
	yearNum, err := strconv.Atoi(year)
	if err != nil {
		return nil, nil
	}

	universe, order, err := s.resolveUniverse(ctx, ambassadorIDs)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, nil
	}

	from := time.Date(yearNum, time.January, 1, 0, 0, 0, 0, time.UTC)
	apps, err := s.applications.ListByCreatedRange(ctx, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applications for year")
	}

	yearTotal := decimal.Zero
	var monthTotals [12]decimal.Decimal

	for i := range apps {
		app := &apps[i]
		acc, ok := universe[app.AmbassadorID]
		if !ok {
			continue
		}
		cost := merch.Cost(app)
		if cost.IsZero() {
			continue
		}
		monthIdx := int(app.Created.UTC().Month()) - 1

		yearTotal = yearTotal.Add(cost)
		monthTotals[monthIdx] = monthTotals[monthIdx].Add(cost)
		acc.total = acc.total.Add(cost)
		acc.months[monthIdx] = acc.months[monthIdx].Add(cost)
	}

	if yearTotal.IsZero() {
		return nil, nil
	}

	report := &YearReport{
		Year:        year,
		YearTotal:   yearTotal,
		Months:      monthsView(monthTotals),
		Ambassadors: make([]AmbassadorBudget, 0, len(order)),
	}
	for _, id := range order {
		acc := universe[id]
		report.Ambassadors = append(report.Ambassadors, AmbassadorBudget{
			AmbassadorName:          acc.name,
			AmbassadorYearTotal:     acc.total,
			AmbassadorMonthsBudgets: monthsView(acc.months),
		})
	}
	return report, nil
}

func (s *service) resolveUniverse(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ambassadorTotals, []uuid.UUID, error) {
	ambassadors, err := s.ambassadors.ListByIDs(ctx, ids)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ambassadors")
	}

	sort.Slice(ambassadors, func(i, j int) bool {
		if ambassadors[i].Name != ambassadors[j].Name {
			return ambassadors[i].Name < ambassadors[j].Name
		}
		return ambassadors[i].ID.String() < ambassadors[j].ID.String()
	})

	universe := make(map[uuid.UUID]*ambassadorTotals, len(ambassadors))
	order := make([]uuid.UUID, 0, len(ambassadors))
	for _, amb := range ambassadors {
		universe[amb.ID] = &ambassadorTotals{name: amb.Name, total: decimal.Zero}
		order = append(order, amb.ID)
	}
	return universe, order, nil
}
