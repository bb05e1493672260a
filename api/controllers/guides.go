package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/brandcrew/ambassador-crm/api/responses"
	"github.com/brandcrew/ambassador-crm/api/validators"
	guidesvc "github.com/brandcrew/ambassador-crm/internal/guides"
	"github.com/brandcrew/ambassador-crm/pkg/enums"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/logger"
)

func CreateGuideTask(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		var payload createGuideTaskRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		taskType, err := enums.ParseGuideTaskType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid task type"))
			return
		}

		task, err := svc.CreateTask(r.Context(), taskType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, task)
	}
}

func ListGuideTasks(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		tasks, err := svc.ListTasks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tasks)
	}
}

func CreateGuideKit(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		var payload guideKitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kit, err := svc.CreateKit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, kit)
	}
}

func GetGuideKit(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		id, err := pathUUID(r, "kitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kit, err := svc.GetKit(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, kit)
	}
}

func ListGuideKits(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		kits, err := svc.ListKits(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, kits)
	}
}

func UpdateGuideKit(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		id, err := pathUUID(r, "kitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload guideKitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kit, err := svc.UpdateKit(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, kit)
	}
}

func DeleteGuideKit(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		id, err := pathUUID(r, "kitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteKit(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AssignGuide(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		var payload assignGuideRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ambassadorID, err := uuid.Parse(payload.AmbassadorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ambassador id"))
			return
		}
		kitID, err := uuid.Parse(payload.KitID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kit id"))
			return
		}

		guide, err := svc.Assign(r.Context(), ambassadorID, kitID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, guide)
	}
}

func SetGuideStatus(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		id, err := pathUUID(r, "guideId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setGuideStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseGuideStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid guide status"))
			return
		}

		guide, err := svc.SetStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, guide)
	}
}

func ListGuidesForAmbassador(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		ambassadorID, err := validators.ParseQueryUUID(r, "ambassador")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if ambassadorID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "ambassador query parameter required"))
			return
		}

		guides, err := svc.ListForAmbassador(r.Context(), *ambassadorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, guides)
	}
}

func UnassignGuide(svc guidesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guide service unavailable"))
			return
		}

		id, err := pathUUID(r, "guideId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Unassign(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createGuideTaskRequest struct {
	Type string `json:"type" validate:"required"`
}

type guideKitRequest struct {
	Name    string   `json:"name" validate:"required"`
	TaskIDs []string `json:"task_ids" validate:"required,min=1,dive,uuid"`
}

func (p guideKitRequest) toInput() (guidesvc.KitInput, error) {
	input := guidesvc.KitInput{
		Name:    strings.TrimSpace(p.Name),
		TaskIDs: make([]uuid.UUID, 0, len(p.TaskIDs)),
	}
	for _, raw := range p.TaskIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return guidesvc.KitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid task id")
		}
		input.TaskIDs = append(input.TaskIDs, id)
	}
	return input, nil
}

type assignGuideRequest struct {
	AmbassadorID string `json:"ambassador_id" validate:"required,uuid"`
	KitID        string `json:"kit_id" validate:"required,uuid"`
}

type setGuideStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
