package router

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/farmasys/orcamento-api/internal/config"
	"github.com/farmasys/orcamento-api/internal/handler"
	mw "github.com/farmasys/orcamento-api/internal/middleware"
	"github.com/farmasys/orcamento-api/internal/report"
)

// New creates a Chi router with all application routes wired up. Every route
// except the health probe sits behind the bearer-token gate, matching the
// original service which gates even its home endpoint.
func New(cfg *config.Config, db handler.Executor) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(mw.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Protected routes (require the API token)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.APIToken))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte("🚀 API de Orçamentos está online!"))
		})

		queryHandler := handler.NewQueryHandler(db, cfg.QueryTimeout)
		queryHandler.RegisterRoutes(r)

		reportHandler := handler.NewReportHandler(db, loadLogo(cfg.LogoPath), cfg.QueryTimeout)
		reportHandler.RegisterRoutes(r)
	})

	log.Println("Router initialized with all handlers")
	return r
}

// loadLogo reads the optional header logo once at startup. A missing or
// unreadable asset is not an error: reports simply render without it.
func loadLogo(path string) *report.Logo {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("logo asset not loaded (%v), reports will render without it", err)
		return nil
	}
	return &report.Logo{Bytes: b, Ext: filepath.Ext(path)}
}
