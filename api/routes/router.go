package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasmedina/viandas-backend/api/controllers"
	"github.com/lucasmedina/viandas-backend/api/middleware"
	"github.com/lucasmedina/viandas-backend/internal/auth"
	"github.com/lucasmedina/viandas-backend/internal/customers"
	"github.com/lucasmedina/viandas-backend/internal/dashboard"
	"github.com/lucasmedina/viandas-backend/internal/followups"
	"github.com/lucasmedina/viandas-backend/internal/meals"
	"github.com/lucasmedina/viandas-backend/internal/orders"
	"github.com/lucasmedina/viandas-backend/pkg/auth/session"
	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/db"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
	"github.com/lucasmedina/viandas-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Cfg            *config.Config
	Logg           *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionManager session.AccessSessionChecker
	Registry       *prometheus.Registry

	Auth      auth.Service
	Meals     meals.Service
	Customers customers.Service
	Orders    orders.Service
	Followups followups.Service
	Dashboard dashboard.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
		if !cfg.App.IsProd() {
			r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		if deps.Redis != nil {
			r.Use(middleware.Idempotency(deps.Redis, logg))
		}

		r.Route("/meals", func(r chi.Router) {
			r.Get("/", controllers.MealList(deps.Meals, logg))
			r.Post("/", controllers.MealCreate(deps.Meals, logg))
			r.Delete("/{mealId}", controllers.MealDelete(deps.Meals, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(deps.Customers, logg))
			r.Post("/", controllers.CustomerCreate(deps.Customers, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(deps.Customers, logg))
			r.Patch("/{customerId}", controllers.CustomerUpdate(deps.Customers, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Post("/", controllers.OrderCreate(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(deps.Orders, logg))
			r.With(middleware.RequireRole("admin", logg)).Delete("/{orderId}", controllers.OrderDelete(deps.Orders, logg))
		})

		r.Route("/followups", func(r chi.Router) {
			r.Get("/", controllers.FollowupList(deps.Followups, logg))
			r.Post("/{followupId}/sent", controllers.FollowupMarkSent(deps.Followups, logg))
		})

		r.Get("/dashboard", controllers.DashboardSummary(deps.Dashboard, logg))
	})

	return r
}
