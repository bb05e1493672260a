package controllers

import (
	"net/http"

	"github.com/brandcrew/ambassador-crm/api/responses"
	"github.com/brandcrew/ambassador-crm/pkg/config"
	"github.com/brandcrew/ambassador-crm/pkg/db"
	pkgerrors "github.com/brandcrew/ambassador-crm/pkg/errors"
	"github.com/brandcrew/ambassador-crm/pkg/logger"
	"github.com/brandcrew/ambassador-crm/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AmbCRM-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the backing stores; any failure flips the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AmbCRM-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if database == nil {
			checks["database"] = "not configured"
			healthy = false
		} else if err := database.Ping(r.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if cache == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := cache.Ping(r.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
