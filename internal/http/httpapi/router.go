package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/http/handlers"
	"server/internal/middleware"
)

// Options carries the router dependencies.
type Options struct {
	App             *handlers.App
	Identity        domain.IdentityClient
	JWTSecret       string
	RateLimitPerMin int
	Logger          zerolog.Logger
}

// NewRouter assembles the middleware chain and the API routes.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	app := opts.App

	// Health
	r.Get("/v1/healthz", app.Health)

	auth := middleware.Auth(opts.JWTSecret, opts.Identity, opts.Logger)

	r.Route("/api/ai", func(r chi.Router) {
		r.Use(auth)
		r.Post("/article", app.GenerateArticle)
		r.Post("/blog-titles", app.GenerateBlogTitles)
		r.Post("/image", app.GenerateImage)
		r.Post("/remove/background", app.RemoveBackground)
		r.Post("/remove/object", app.RemoveObject)
		r.Post("/review/resume", app.ReviewResume)
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Use(auth)
		r.Get("/creations", app.GetUserCreations)
		r.Get("/creations/public", app.GetPublicCreations)
		r.Post("/creations/{creationId}/like", app.LikeCreation)
	})

	return r
}
