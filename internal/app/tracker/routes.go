package tracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация документации swagger для /docs.
	_ "github.com/magabrotheeeer/subscription-tracker/docs"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/auth/login"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/auth/register"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/category/categorylist"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/category/categorysave"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/comparison"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/duplicate"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/master"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/read"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/summary"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/api/middlewarectx"
	authservice "github.com/magabrotheeeer/subscription-tracker/internal/services/auth"
	categoryservice "github.com/magabrotheeeer/subscription-tracker/internal/services/category"
	subservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
)

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Auth         *authservice.AuthService
	Subscription *subservice.SubscriptionService
	Category     *categoryservice.CategoryService
}

// Router зависимости, из которых собирается роутер.
type Router struct {
	Logger   *slog.Logger
	Services Services
	Limiter  *middlewarectx.RateLimiter
	Registry *prometheus.Registry
	Metrics  *middlewarectx.Metrics
	Health   map[string]health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, deps Router) {
	logger := deps.Logger
	subs := deps.Services.Subscription
	categories := deps.Services.Category

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		deps.Metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/signup", register.New(logger, deps.Services.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Services.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Services.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, deps.Limiter))

			r.Get("/subscriptions", list.New(logger, subs).ServeHTTP)
			r.Post("/subscriptions", create.New(logger, subs).ServeHTTP)
			r.Get("/subscriptions/summary", summary.New(logger, subs, nil).ServeHTTP)
			r.Get("/subscriptions/check-duplicate", duplicate.New(logger, subs).ServeHTTP)
			r.Get("/subscriptions/master", master.New(logger, categories).ServeHTTP)
			r.Get("/subscriptions/{id}", read.New(logger, subs).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subs).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subs).ServeHTTP)
			r.Get("/comparison", comparison.New(logger, subs).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, categories).ServeHTTP)
			r.Post("/categories", categorysave.New(logger, categories).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, deps.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
