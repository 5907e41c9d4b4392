package main

import (
	"net/http"
	"net/netip"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sclayai/proposal-intake/internal/infra/http/handlers"
	"github.com/sclayai/proposal-intake/internal/infra/http/middleware"
)

type routes struct {
	forms       *handlers.FormHandler
	dashboard   *handlers.DashboardHandler
	auth        *handlers.AuthHandler
	health      *handlers.HealthHandler
	sessions    middleware.Resolver
	corsOrigins []string

	// trustedProxies may set the client address through forwarded headers.
	trustedProxies []netip.Prefix
	logger         *zap.Logger
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.TrustedRealIP(rt.trustedProxies))
	r.Use(middleware.RequestLogger(rt.logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(rt.corsOrigins, "*"),
		MaxAge:           300,
	}))

	r.Get("/health", rt.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/options", rt.dashboard.HandleOptions)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(rt.sessions))

		r.Get("/login", rt.auth.ShowLogin)
		r.Post("/login", rt.auth.Login)
		r.Post("/logout", rt.auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			r.Post("/onboarding", rt.forms.SubmitOnboarding)
			r.Post("/prospects", rt.forms.SubmitProspect)

			r.Get("/", rt.dashboard.HandlePage)
			r.Get("/api/dashboard", rt.dashboard.HandleList)
			r.Post("/api/dashboard/refresh", rt.dashboard.HandleRefresh)
			r.Route("/api/proposals/{kind}/{id}", func(r chi.Router) {
				r.Put("/", rt.dashboard.HandleUpdate)
				r.Delete("/", rt.dashboard.HandleDelete)
				r.Get("/draft", rt.dashboard.HandleDraft)
				r.Patch("/status", rt.dashboard.HandleStatus)
				r.Get("/state", rt.dashboard.HandleMutationState)
			})
		})
	})

	return r
}
