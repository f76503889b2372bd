package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayakevin/shopledger-backend/api/controllers"
	"github.com/ayakevin/shopledger-backend/api/middleware"
	"github.com/ayakevin/shopledger-backend/internal/categories"
	"github.com/ayakevin/shopledger-backend/internal/ledger"
	"github.com/ayakevin/shopledger-backend/internal/products"
	"github.com/ayakevin/shopledger-backend/pkg/config"
	"github.com/ayakevin/shopledger-backend/pkg/db"
	"github.com/ayakevin/shopledger-backend/pkg/logger"
	"github.com/ayakevin/shopledger-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	productService products.Service,
	categoryService categories.Service,
	ledgerService ledger.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		}),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/{owner}", func(r chi.Router) {
		r.Use(middleware.OwnerScope(cfg.App, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
			r.Post("/{productId}/sale", controllers.RecordSale(ledgerService, logg))
			r.Post("/{productId}/unsale", controllers.RecordUnsale(ledgerService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(categoryService, logg))
			r.Post("/", controllers.CreateCategory(categoryService, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSalesLog(ledgerService, logg))
			r.Get("/summary", controllers.SalesSummary(ledgerService, logg))
		})
	})

	return r
}
