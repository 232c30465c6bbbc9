package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Buyaki01/airbnb-api/internal/service"
	"github.com/Buyaki01/airbnb-api/internal/session"
	"github.com/Buyaki01/airbnb-api/pkg/health"
	"github.com/Buyaki01/airbnb-api/pkg/middleware"
)

// RouterConfig bundles the dependencies for the HTTP router.
type RouterConfig struct {
	AuthService          *service.AuthService
	AccommodationService *service.AccommodationService
	BookingService       *service.BookingService
	Verifier             session.Verifier
	CookieTTL            time.Duration
	HealthHandler        *health.Handler
	Logger               *slog.Logger
	CORS                 CORSConfig
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("airbnb-api"))

	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(cfg.AuthService, cfg.CookieTTL, cfg.Logger)
	accHandler := NewAccommodationHandler(cfg.AccommodationService, cfg.Logger)
	bookingHandler := NewBookingHandler(cfg.BookingService, cfg.Logger)

	// Public auth endpoints
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Post("/logout", authHandler.Logout)

		r.With(session.RequireAuth(cfg.Verifier)).Get("/profile", authHandler.Profile)
	})

	// Listings: browsing is public, but a presented-and-broken credential is
	// still rejected rather than treated as anonymous.
	r.Route("/api/v1/accommodations", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(session.OptionalAuth(cfg.Verifier))

			r.Get("/", accHandler.ListAll)
			r.Get("/{id}", accHandler.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(session.RequireAuth(cfg.Verifier))

			r.Get("/mine", accHandler.ListOwn)
			r.Post("/", accHandler.Create)
			r.Put("/{id}", accHandler.Update)
		})
	})

	// Bookings are always renter-scoped.
	r.Route("/api/v1/bookings", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(session.RequireAuth(cfg.Verifier))

		r.Get("/", bookingHandler.ListOwn)
		r.Get("/{id}", bookingHandler.Get)
		r.Post("/", bookingHandler.Create)
	})

	return r
}
