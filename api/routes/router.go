package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brandcrew/ambassador-crm/api/controllers"
	"github.com/brandcrew/ambassador-crm/api/middleware"
	"github.com/brandcrew/ambassador-crm/internal/ambassadors"
	"github.com/brandcrew/ambassador-crm/internal/budget"
	"github.com/brandcrew/ambassador-crm/internal/catalog"
	"github.com/brandcrew/ambassador-crm/internal/guides"
	"github.com/brandcrew/ambassador-crm/internal/merch"
	"github.com/brandcrew/ambassador-crm/internal/promocodes"
	"github.com/brandcrew/ambassador-crm/pkg/config"
	"github.com/brandcrew/ambassador-crm/pkg/db"
	"github.com/brandcrew/ambassador-crm/pkg/logger"
	"github.com/brandcrew/ambassador-crm/pkg/metrics"
	pkgredis "github.com/brandcrew/ambassador-crm/pkg/redis"
)

// Services bundles the domain services served by the router.
type Services struct {
	Merch       merch.Service
	Budget      budget.Service
	Catalog     catalog.Service
	Ambassadors ambassadors.Service
	Promocodes  promocodes.Service
	Guides      guides.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	var cachePinger pkgredis.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cachePinger))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(logg))
		var idempotencyStore pkgredis.IdempotencyStore
		if redisClient != nil {
			idempotencyStore = redisClient
		}
		r.Use(middleware.Idempotency(idempotencyStore, cfg.Merch.IdempotencyTTL, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/merch_applications", func(r chi.Router) {
			r.Get("/", controllers.ListMerchApplications(svcs.Merch, logg))
			r.Post("/", controllers.CreateMerchApplication(svcs.Merch, logg))
			r.Get("/budget_info", controllers.MerchBudgetInfo(svcs.Budget, logg))
			r.Get("/{applicationId}", controllers.GetMerchApplication(svcs.Merch, logg))
			r.Patch("/{applicationId}", controllers.UpdateMerchApplication(svcs.Merch, logg))
			r.Delete("/{applicationId}", controllers.DeleteMerchApplication(svcs.Merch, logg))
		})

		r.Route("/merch", func(r chi.Router) {
			r.Get("/", controllers.ListMerchItems(svcs.Catalog, logg))
			r.Post("/", controllers.CreateMerchItem(svcs.Catalog, logg))
			r.Get("/{merchId}", controllers.GetMerchItem(svcs.Catalog, logg))
			r.Put("/{merchId}", controllers.UpdateMerchItem(svcs.Catalog, logg))
			r.Delete("/{merchId}", controllers.DeleteMerchItem(svcs.Catalog, logg))
		})

		r.Route("/merch_categories", func(r chi.Router) {
			r.Get("/", controllers.ListMerchCategories(svcs.Catalog, logg))
			r.Post("/", controllers.CreateMerchCategory(svcs.Catalog, logg))
			r.Delete("/{categoryId}", controllers.DeleteMerchCategory(svcs.Catalog, logg))
		})

		r.Route("/ambassadors", func(r chi.Router) {
			r.Get("/", controllers.ListAmbassadors(svcs.Ambassadors, logg))
			r.Post("/", controllers.CreateAmbassador(svcs.Ambassadors, logg))
			r.Get("/{ambassadorId}", controllers.GetAmbassador(svcs.Ambassadors, logg))
			r.Patch("/{ambassadorId}", controllers.UpdateAmbassador(svcs.Ambassadors, logg))
			r.Delete("/{ambassadorId}", controllers.DeleteAmbassador(svcs.Ambassadors, logg))
		})

		r.Route("/promocodes", func(r chi.Router) {
			r.Get("/", controllers.ListPromocodes(svcs.Promocodes, logg))
			r.Post("/", controllers.CreatePromocode(svcs.Promocodes, logg))
			r.Get("/{promocodeId}", controllers.GetPromocode(svcs.Promocodes, logg))
			r.Patch("/{promocodeId}", controllers.SetPromocodeActive(svcs.Promocodes, logg))
			r.Delete("/{promocodeId}", controllers.DeletePromocode(svcs.Promocodes, logg))
		})

		r.Route("/guide_tasks", func(r chi.Router) {
			r.Get("/", controllers.ListGuideTasks(svcs.Guides, logg))
			r.Post("/", controllers.CreateGuideTask(svcs.Guides, logg))
		})

		r.Route("/guide_kits", func(r chi.Router) {
			r.Get("/", controllers.ListGuideKits(svcs.Guides, logg))
			r.Post("/", controllers.CreateGuideKit(svcs.Guides, logg))
			r.Get("/{kitId}", controllers.GetGuideKit(svcs.Guides, logg))
			r.Put("/{kitId}", controllers.UpdateGuideKit(svcs.Guides, logg))
			r.Delete("/{kitId}", controllers.DeleteGuideKit(svcs.Guides, logg))
		})

		r.Route("/guides", func(r chi.Router) {
			r.Get("/", controllers.ListGuidesForAmbassador(svcs.Guides, logg))
			r.Post("/", controllers.AssignGuide(svcs.Guides, logg))
			r.Patch("/{guideId}", controllers.SetGuideStatus(svcs.Guides, logg))
			r.Delete("/{guideId}", controllers.UnassignGuide(svcs.Guides, logg))
		})
	})

	return r
}
