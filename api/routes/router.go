package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/beanwagon-backend/api/controllers"
	"github.com/angelmondragon/beanwagon-backend/api/middleware"
	"github.com/angelmondragon/beanwagon-backend/internal/orders"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	"github.com/angelmondragon/beanwagon-backend/pkg/config"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *storage.Service,
	orderService orders.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Recoverer(logg))

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg))
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.ListMenu(store, logg))
			r.Patch("/{drinkID}", controllers.UpdateMenuFlags(store, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(orderService, logg))
			r.Post("/", controllers.CreateOrder(orderService, logg))
			r.Patch("/{orderID}/status", controllers.UpdateOrderStatus(orderService, logg))
		})

		r.Route("/syrups", func(r chi.Router) {
			r.Get("/", controllers.ListSyrups(store, logg))
			r.Post("/", controllers.AddSyrup(store, logg))
			r.Patch("/{syrupID}/status", controllers.UpdateSyrupStatus(store, logg))
			r.Delete("/{syrupID}", controllers.DeleteSyrup(store, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(store, logg))
			r.Put("/", controllers.SaveSettings(store, logg))
			r.Get("/printer", controllers.GetScalarSetting(store, logg))
			r.Put("/printer", controllers.PutScalarSetting(store, logg))
		})
	})

	return r
}
