package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires the API routes and the middleware chain.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.I18N(cfg.DefaultLocale, lookup))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/stats", app.StatsSummary)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Get("/funded", app.CampaignsFunded)
		r.Get("/{id}", app.CampaignsGet)
		r.Post("/{id}/donations", app.DonationsCreate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(cfg.JWTSecret))
			r.Post("/", app.CampaignsCreate)
			r.With(middleware.RequireRole(middleware.RoleAdmin)).Post("/{id}/close", app.CampaignsClose)
			r.With(middleware.RequireRole(middleware.RoleAdmin)).Get("/{id}/donors", app.CampaignsDonors)
		})
	})

	return r
}
