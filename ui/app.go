package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"dataview/app"
	"dataview/internal"
	"dataview/internal/session"
)

// ArtifactResolver resolves service-relative artifact paths (cleaned file,
// report) into absolute URLs the browser can open.
type ArtifactResolver interface {
	ResolveArtifact(ref string) string
}

// App is the local view server. It drives the session store, upload
// pipeline and history cache over HTTP and serves the active result's
// derived views as JSON for charts and tables.
type App struct {
	router   *chi.Mux
	store    *session.Store
	pipeline *app.UploadPipeline
	history  *app.HistoryCache
	resolver ArtifactResolver
	logger   *internal.Logger
}

// Config holds view server configuration
type Config struct {
	Port string
}

// NewApp wires the view server against the client components.
func NewApp(store *session.Store, pipeline *app.UploadPipeline, history *app.HistoryCache, resolver ArtifactResolver, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	a := &App{
		router:   chi.NewRouter(),
		store:    store,
		pipeline: pipeline,
		history:  history,
		resolver: resolver,
		logger:   logger,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Router exposes the configured mux (handy for tests).
func (a *App) Router() http.Handler {
	return a.router
}

// Start blocks serving HTTP on the configured port.
func (a *App) Start(config Config) error {
	a.logger.Info("[UI] view server listening on :%s", config.Port)
	return http.ListenAndServe(":"+config.Port, a.router)
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
}

func (a *App) setupRoutes() {
	a.router.Get("/api/health", a.handleHealth)

	a.router.Post("/api/auth/login", a.handleLogin)
	a.router.Post("/api/auth/register", a.handleRegister)
	a.router.Post("/api/auth/logout", a.handleLogout)
	a.router.Get("/api/session", a.handleSession)

	a.router.Post("/api/upload", a.handleUpload)
	a.router.Post("/api/reset", a.handleReset)
	a.router.Get("/api/result", a.handleResult)

	a.router.Get("/api/history", a.handleHistory)
	a.router.Post("/api/history/{id}/activate", a.handleActivate)

	a.router.Get("/api/views/completeness", a.handleViewCompleteness)
	a.router.Get("/api/views/types", a.handleViewTypes)
	a.router.Get("/api/views/numeric", a.handleViewNumeric)
	a.router.Get("/api/views/uniqueness", a.handleViewUniqueness)
	a.router.Get("/api/views/table", a.handleViewTable)
	a.router.Get("/api/views/preview", a.handleViewPreview)
}
