package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandcrew/ambassador-crm/api/middleware"
	"github.com/brandcrew/ambassador-crm/api/responses"
	"github.com/brandcrew/ambassador-crm/api/validators"
	"github.com/brandcrew/ambassador-crm/internal/budget"
	merchsvc "github.com/brandcrew/ambassador-crm/internal/merch"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/logger"
)

// CreateMerchApplication handles application submission. The tutor is the
// authenticated caller, never a body field.
func CreateMerchApplication(svc merchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "merch application service unavailable"))
			return
		}

		tutorID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createMerchApplicationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(tutorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, application)
	}
}

// UpdateMerchApplication applies a partial patch. Omitted fields keep their
// stored values; a submitted line_items array replaces the stored set
// wholesale.
func UpdateMerchApplication(svc merchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "merch application service unavailable"))
			return
		}

		id, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tutorID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateMerchApplicationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(tutorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, application)
	}
}

func GetMerchApplication(svc merchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "merch application service unavailable"))
			return
		}

		id, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, application)
	}
}

func ListMerchApplications(svc merchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "merch application service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := merchsvc.ListFilters{
			ApplicationNumber: r.URL.Query().Get("application_number"),
			MerchSlugs:        validators.ParseQueryList(r, "merch"),
		}
		if filters.AmbassadorID, err = validators.ParseQueryUUID(r, "ambassador"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.TutorID, err = validators.ParseQueryUUID(r, "tutor"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.CreatedFrom, err = validators.ParseQueryDate(r, "start_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.CreatedTo, err = validators.ParseQueryDate(r, "end_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ordering, err := merchsvc.ParseOrdering(r.URL.Query().Get("ordering"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params, filters, ordering)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func DeleteMerchApplication(svc merchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "merch application service unavailable"))
			return
		}

		id, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// MerchBudgetInfo serves the annual budget report as a single object. A
// malformed year or an empty spend both produce an empty list instead,
// mirroring the console contract.
func MerchBudgetInfo(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		ambassadorIDs, err := validators.ParseQueryUUIDList(r, "ambassadors")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.ComputeYearBudget(r.Context(), r.URL.Query().Get("year"), ambassadorIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if report == nil {
			responses.WriteSuccess(w, []budget.YearReport{})
			return
		}
		responses.WriteSuccess(w, report)
	}
}

type createMerchApplicationRequest struct {
	AmbassadorID      string                 `json:"ambassador_id" validate:"required,uuid"`
	ApplicationNumber string                 `json:"application_number,omitempty" validate:"omitempty,max=50"`
	Created           *time.Time             `json:"created,omitempty"`
	LineItems         []merchLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type updateMerchApplicationRequest struct {
	AmbassadorID      *string                `json:"ambassador_id,omitempty" validate:"omitempty,uuid"`
	ApplicationNumber *string                `json:"application_number,omitempty" validate:"omitempty,max=50"`
	Created           *time.Time             `json:"created,omitempty"`
	LineItems         []merchLineItemRequest `json:"line_items,omitempty" validate:"omitempty,min=1,dive"`
}

type merchLineItemRequest struct {
	MerchID  string `json:"merch_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=100"`
}

func (p createMerchApplicationRequest) toInput(tutorID uuid.UUID) (merchsvc.CreateInput, error) {
	ambassadorID, err := uuid.Parse(p.AmbassadorID)
	if err != nil {
		return merchsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ambassador id")
	}

	items, err := lineItemInputs(p.LineItems)
	if err != nil {
		return merchsvc.CreateInput{}, err
	}
	return merchsvc.CreateInput{
		AmbassadorID:      ambassadorID,
		TutorID:           tutorID,
		ApplicationNumber: p.ApplicationNumber,
		Created:           p.Created,
		LineItems:         items,
	}, nil
}

func (p updateMerchApplicationRequest) toInput(tutorID uuid.UUID) (merchsvc.UpdateInput, error) {
	input := merchsvc.UpdateInput{
		TutorID:           tutorID,
		ApplicationNumber: p.ApplicationNumber,
		Created:           p.Created,
	}
	if p.AmbassadorID != nil {
		ambassadorID, err := uuid.Parse(*p.AmbassadorID)
		if err != nil {
			return merchsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ambassador id")
		}
		input.AmbassadorID = &ambassadorID
	}
	if p.LineItems != nil {
		items, err := lineItemInputs(p.LineItems)
		if err != nil {
			return merchsvc.UpdateInput{}, err
		}
		input.LineItems = items
	}
	return input, nil
}

func lineItemInputs(lines []merchLineItemRequest) ([]merchsvc.LineItemInput, error) {
	items := make([]merchsvc.LineItemInput, 0, len(lines))
	for _, line := range lines {
		merchID, err := uuid.Parse(line.MerchID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid merch id")
		}
		items = append(items, merchsvc.LineItemInput{
			MerchID:  merchID,
			Quantity: line.Quantity,
		})
	}
	return items, nil
}

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "caller identity missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid caller identity")
	}
	return id, nil
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid resource id")
	}
	return id, nil
}
