package router

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pixelgrove/ingest/internal/api"
	"github.com/pixelgrove/ingest/internal/config"
	"github.com/pixelgrove/ingest/internal/database"
	"github.com/pixelgrove/ingest/internal/handler"
	"github.com/pixelgrove/ingest/internal/pipeline"
)

// Server holds the application dependencies and HTTP router.
type Server struct {
	Pipeline *pipeline.Pipeline
	DB       database.AssetStore
	Config   *config.Config
	Router   chi.Router
}

// New creates a new Server with a fully configured chi router.
func New(p *pipeline.Pipeline, db database.AssetStore, cfg *config.Config) *Server {
	s := &Server{Pipeline: p, DB: db, Config: cfg}

	h := &handler.Handler{
		Pipeline: p,
		DB:       db,
		Config:   cfg,
	}

	r := chi.NewRouter()

	// CORS — must be before other middleware to handle preflight OPTIONS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check (no auth required).
	r.Get("/health", s.Health)

	r.Route("/api/images", func(r chi.Router) {
		// Reads are public; the site frontend consumes them directly.
		r.Get("/", h.ListAssets)
		r.Get("/{asset_id}", h.GetAsset)

		// Mutations require the admin token.
		r.Group(func(r chi.Router) {
			r.Use(api.AuthMiddleware(cfg.AuthToken))
			r.Post("/", h.UploadAsset)
			r.Patch("/{asset_id}", h.UpdateAsset)
			r.Delete("/{asset_id}", h.DeleteAsset)
		})
	})

	s.Router = r
	return s
}

// Health returns a simple health-check response.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}
