package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/b2xautomacao/catalogo-sub004/api/controllers"
	"github.com/b2xautomacao/catalogo-sub004/api/middleware"
	"github.com/b2xautomacao/catalogo-sub004/internal/cart"
	"github.com/b2xautomacao/catalogo-sub004/internal/catalog"
	"github.com/b2xautomacao/catalogo-sub004/internal/products"
	"github.com/b2xautomacao/catalogo-sub004/internal/stores"
	"github.com/b2xautomacao/catalogo-sub004/pkg/config"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db"
	"github.com/b2xautomacao/catalogo-sub004/pkg/logger"
	"github.com/b2xautomacao/catalogo-sub004/pkg/metrics"
	"github.com/b2xautomacao/catalogo-sub004/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Registry *prometheus.Registry

	Stores   stores.Service
	Products products.Service
	Cart     cart.Service
	Catalog  catalog.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(metrics.NewHTTPMetrics(deps.Registry)),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, healthDeps(deps)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog/{slug}", func(r chi.Router) {
		r.Get("/", controllers.CatalogStorefront(deps.Catalog, logg))
		r.Get("/products", controllers.CatalogProducts(deps.Catalog, logg))
		r.Get("/products/{productID}", controllers.CatalogProductDetail(deps.Catalog, logg))
		r.Post("/cart/quote", controllers.CartQuote(deps.Cart, deps.Stores, logg))
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.StoreContext(logg))

		r.Get("/pricing-settings", controllers.PricingSettingsGet(deps.Stores, logg))
		r.Put("/pricing-settings", controllers.PricingSettingsUpdate(deps.Stores, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Post("/", controllers.ProductCreate(deps.Products, logg))
			r.Get("/{productID}", controllers.ProductGet(deps.Products, logg))
			r.Patch("/{productID}", controllers.ProductUpdate(deps.Products, logg))
			r.Delete("/{productID}", controllers.ProductDelete(deps.Products, logg))
			r.Put("/{productID}/tiers", controllers.ProductTiersReplace(deps.Products, logg))
		})
	})

	return r
}

func healthDeps(deps Deps) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if deps.DB != nil {
		checks["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return checks
}
