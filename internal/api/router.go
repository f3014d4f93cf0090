package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/middleware"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/config"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
)

// Services bundles the services the router dispatches to.
type Services struct {
	System   *service.SystemService
	Estimate *service.EstimateService
	Delivery *service.DeliveryService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, m *metrics.Metrics, logger zerolog.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Set before any Route call so mounted sub-routers inherit them.
	r.MethodNotAllowed(handlers.MethodNotAllowed)
	r.NotFound(handlers.NotFound)

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.InstrumentHandler)
	}

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	systemHandler := handlers.NewSystemHandler(services.System)
	estimateHandler := handlers.NewEstimateHandler(services.Estimate, services.Delivery)
	emailLimiter := custommiddleware.NewRateLimiter(cfg.RateLimit.EmailPerMinute, cfg.RateLimit.EmailBurst)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/estimate", func(r chi.Router) {
			r.Post("/", estimateHandler.Calculate)
			r.Post("/verify", estimateHandler.Verify)
			r.With(emailLimiter.Handler).Post("/email", estimateHandler.Email)
		})

		r.With(emailLimiter.Handler).Post("/sendEstimate", estimateHandler.Email)
	})

	return r
}
