package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandcrew/ambassador-crm/api/responses"
	"github.com/brandcrew/ambassador-crm/api/validators"
	promosvc "github.com/brandcrew/ambassador-crm/internal/promocodes"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/logger"
)

func CreatePromocode(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promocode service unavailable"))
			return
		}

		var payload createPromocodeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ambassadorID, err := uuid.Parse(payload.AmbassadorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ambassador id"))
			return
		}

		code, err := svc.Create(r.Context(), promosvc.CreateInput{
			Code:         strings.TrimSpace(payload.Code),
			AmbassadorID: ambassadorID,
			Created:      payload.Created,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, code)
	}
}

func GetPromocode(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promocode service unavailable"))
			return
		}

		id, err := pathUUID(r, "promocodeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, code)
	}
}

func ListPromocodes(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promocode service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := promosvc.ListFilters{
			Query: r.URL.Query().Get("query"),
		}
		if filters.AmbassadorID, err = validators.ParseQueryUUID(r, "ambassador"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.IsActive, err = validators.ParseQueryBool(r, "is_active"); err != nil {
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

		page, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func SetPromocodeActive(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promocode service unavailable"))
			return
		}

		id, err := pathUUID(r, "promocodeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setPromocodeActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := svc.SetActive(r.Context(), id, *payload.IsActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, code)
	}
}

func DeletePromocode(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promocode service unavailable"))
			return
		}

		id, err := pathUUID(r, "promocodeId")
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

type createPromocodeRequest struct {
	Code         string     `json:"code" validate:"required"`
	AmbassadorID string     `json:"ambassador_id" validate:"required,uuid"`
	Created      *time.Time `json:"created,omitempty"`
}

type setPromocodeActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
