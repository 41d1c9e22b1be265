// Package api exposes the catalog and generation services as a JSON HTTP API.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fpang/prompt-gallery/internal/archive"
	"github.com/fpang/prompt-gallery/internal/auth"
	"github.com/fpang/prompt-gallery/internal/boot"
	"github.com/fpang/prompt-gallery/internal/catalog"
	"github.com/fpang/prompt-gallery/internal/gemini"
	"github.com/fpang/prompt-gallery/internal/jobs"
)

// maxBodyBytes bounds JSON request bodies. Five 10 MiB attachments grow by a
// third once base64-encoded.
const maxBodyBytes = 80 << 20

// Generator produces images and prompt text.
type Generator interface {
	Available() bool
	GenerateImage(ctx context.Context, prompt string, attachments []string) (string, error)
	SuggestPrompt(ctx context.Context, title, description string) (string, error)
}

// VideoRunner runs a whole video job.
type VideoRunner interface {
	Run(ctx context.Context, req gemini.VideoRequest, progress func(string)) (jobs.Result, error)
}

// Archiver saves generated artifacts.
type Archiver interface {
	Enabled() bool
	Save(ctx context.Context, kind archive.Kind, data []byte, mimeType string) (archive.Saved, error)
}

// Server holds the handler dependencies.
type Server struct {
	catalog *catalog.Store
	gen     Generator
	videos  VideoRunner
	archive Archiver
	admin   auth.Credentials
	origins []string
}

// Options configures a Server. Nil services disable the routes that need them.
type Options struct {
	Catalog        *catalog.Store
	Generator      Generator
	Videos         VideoRunner
	Archive        Archiver
	Admin          auth.Credentials
	AllowedOrigins []string
}

// New creates a Server.
func New(opts Options) *Server {
	return &Server{
		catalog: opts.Catalog,
		gen:     opts.Generator,
		videos:  opts.Videos,
		archive: opts.Archive,
		admin:   opts.Admin,
		origins: opts.AllowedOrigins,
	}
}

// FromApp creates a Server over the assembled services.
func FromApp(app *boot.App) *Server {
	opts := Options{
		Catalog:        app.Catalog,
		Admin:          app.Config.Admin(),
		AllowedOrigins: app.Config.AllowedOrigins,
	}
	if app.Gemini != nil {
		opts.Generator = app.Gemini
	}
	if app.Runner != nil {
		opts.Videos = app.Runner
	}
	if app.Archive != nil {
		opts.Archive = app.Archive
	}
	return New(opts)
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(withLogging)
	r.Use(withMetrics)
	r.Use(middleware.Recoverer)
	r.Use(s.withCORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)

		r.Get("/categories", s.handleListCategories)
		r.Get("/categories/{id}", s.handleGetCategory)
		r.Get("/prompts", s.handleListPrompts)
		r.Get("/prompts/{id}", s.handleGetPrompt)

		r.Post("/images", s.handleGenerateImage)
		r.Post("/videos", s.handleGenerateVideo)
		r.Post("/attachments", s.handleUploadAttachment)
		r.Post("/archive", s.handleArchive)

		r.Post("/admin/login", s.handleAdminLogin)
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/stats", s.handleAdminStats)
			r.Post("/prompts", s.handleCreatePrompt)
			r.Post("/prompts/suggest", s.handleSuggestPrompt)
			r.Put("/prompts/{id}", s.handleUpdatePrompt)
			r.Delete("/prompts/{id}", s.handleDeletePrompt)
			r.Post("/categories", s.handleCreateCategory)
			r.Delete("/categories/{id}", s.handleDeleteCategory)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *Server) aiAvailable() bool {
	return s.gen != nil && s.gen.Available()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{
		"aiAvailable":    s.aiAvailable(),
		"archiveEnabled": s.archive != nil && s.archive.Enabled(),
	})
}
