package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/session"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(settings Settings, store *session.Store, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(settings.SourcePath, store)
	workbookH := NewWorkbookHandler(settings, store)
	recomputeH := NewRecomputeHandler(settings)

	r.Get("/health", healthH.Health)

	// Session-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(SessionKey)

		r.Post("/rows", workbookH.AddRows)
		r.Get("/sheets", workbookH.Sheets)
		r.Get("/download", workbookH.Download)
		r.Post("/clear", workbookH.Clear)
	})

	// Source-only routes
	r.Get("/preview", recomputeH.Preview)
	r.Post("/recompute", recomputeH.Recompute)

	return r
}
