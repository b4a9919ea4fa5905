package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/boticaviva/backend/api/controllers"
	"github.com/boticaviva/backend/api/middleware"
	"github.com/boticaviva/backend/internal/advice"
	"github.com/boticaviva/backend/internal/auth"
	"github.com/boticaviva/backend/internal/cart"
	"github.com/boticaviva/backend/internal/catalog"
	"github.com/boticaviva/backend/internal/erp"
	"github.com/boticaviva/backend/internal/orders"
	"github.com/boticaviva/backend/internal/pickup"
	"github.com/boticaviva/backend/internal/settings"
	"github.com/boticaviva/backend/pkg/config"
	"github.com/boticaviva/backend/pkg/db"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/metrics"
	redispkg "github.com/boticaviva/backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redispkg.Client
	Metrics  *metrics.StorefrontMetrics
	Registry *prometheus.Registry

	Auth     auth.Service
	Settings settings.Service
	Pickup   pickup.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Orders   orders.Service
	ERP      erp.Service
	Advice   advice.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Get("/ping", controllers.Ping())
		r.Get("/catalog", controllers.StorefrontCatalog(deps.Catalog, logg))
		r.Get("/settings", controllers.GetSettings(deps.Settings, logg))
		r.Get("/pickup-locations", controllers.ListPickupLocations(deps.Pickup, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Orders, logg))
		r.Get("/orders/track/{code}", controllers.TrackOrder(deps.Orders, logg))
		r.Post("/advice", controllers.GetAdvice(deps.Advice, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Admin, logg))

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.GetSettings(deps.Settings, logg))
				r.Put("/", controllers.UpdateSettings(deps.Settings, logg))
				r.Post("/country", controllers.SetCountry(deps.Settings, logg))
				r.Get("/countries", controllers.ListCountries(deps.Settings))
			})

			r.Route("/pickup-locations", func(r chi.Router) {
				r.Get("/", controllers.ListPickupLocations(deps.Pickup, logg))
				r.Post("/", controllers.CreatePickupLocation(deps.Pickup, logg))
				r.Put("/{locationId}", controllers.UpdatePickupLocation(deps.Pickup, logg))
				r.Delete("/{locationId}", controllers.DeletePickupLocation(deps.Pickup, logg))
			})

			r.Route("/mappings", func(r chi.Router) {
				r.Get("/", controllers.ListCategoryMappings(deps.Catalog, logg))
				r.Put("/", controllers.UpsertCategoryMapping(deps.Catalog, logg))
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", controllers.AdminCatalog(deps.Catalog, logg))
				r.Post("/publish", controllers.PublishProducts(deps.Catalog, logg))
				r.Post("/unpublish", controllers.UnpublishProducts(deps.Catalog, logg))
				r.Route("/selection", func(r chi.Router) {
					r.Get("/", controllers.GetSelection(deps.Catalog, logg))
					r.Post("/", controllers.SelectProducts(deps.Catalog, logg))
					r.Post("/deselect", controllers.DeselectProducts(deps.Catalog, logg))
					r.Delete("/", controllers.ClearSelection(deps.Catalog, logg))
				})
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(deps.Orders, logg))
				r.Post("/{orderId}/advance", controllers.AdvanceOrderStage(deps.Orders, logg))
			})

			r.Route("/erp", func(r chi.Router) {
				r.Get("/status", controllers.ERPStatus(deps.ERP, logg))
				r.Post("/connect", controllers.ConnectERP(deps.ERP, logg))
				r.Post("/disconnect", controllers.DisconnectERP(deps.ERP, logg))
				r.Post("/sync", controllers.SyncERP(deps.Catalog, logg))
				r.Get("/categories", controllers.ERPCategories(deps.ERP, logg))
			})
		})
	})

	return r
}
