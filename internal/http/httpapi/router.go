package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"deckgen/internal/http/handlers"
	"deckgen/internal/infra"
	"deckgen/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimiddleware.RealIP,
		middleware.RequestID,
		middleware.Logger(logger),
		chimiddleware.Recoverer,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Locale("en"),
	)

	r.Get("/", app.Root)
	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
			Post("/generate", app.Generate)
		r.Get("/job/{jobID}", app.JobStatus)
		r.Post("/export", app.Export)
	})

	return r
}
