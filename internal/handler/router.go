package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaultpass/passforge-go/internal/config"
	"github.com/vaultpass/passforge-go/internal/middleware"
)

// NewRouter mounts every route. records may be nil when no store is
// configured, in which case the records API is not exposed.
func NewRouter(ctx context.Context, cfg config.Config, gen *GeneratorHandler, records *RecordHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate-passwords", gen.HandleGenerate)
		r.Post("/api/generate-passwords", gen.HandleGenerate)
	})

	if records != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/api/v1/passwords", records.HandleList)
			r.Get("/api/v1/passwords/{id}", records.HandleGet)
		})
	}

	return r
}
