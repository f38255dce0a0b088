package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// AllowedOrigins lists CORS origins. Default: http://localhost:3000.
	AllowedOrigins []string

	// RequestTimeout bounds each request, including the completion call.
	// Default: 2m.
	RequestTimeout time.Duration

	// AccessLog enables chi's request logger.
	AccessLog bool
}

// NewRouter mounts the session API on a chi router.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 2 * time.Minute
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if opts.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/sessions", func(sr chi.Router) {
		sr.Post("/", h.CreateSession)
		sr.Route("/{id}", func(ir chi.Router) {
			ir.Get("/", h.GetSession)
			ir.Delete("/", h.DeleteSession)
			ir.Post("/questions", h.GenerateQuestions)
			ir.Put("/answers/{index}", h.SelectAnswer)
			ir.Post("/finish", h.Finish)
			ir.Post("/feedback", h.Feedback)
		})
	})

	return r
}
