package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"datasweep/app"
	"datasweep/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App serves the upload-convert-summarize UI over the pipeline. It
// owns the only mutable state in the process: the upload store.
type App struct {
	router    *chi.Mux
	pipeline  *app.Pipeline
	store     *UploadStore
	templates *template.Template
	cfg       *config.Config
	stop      chan struct{}
}

// NewApp creates the UI application over a configured pipeline
func NewApp(cfg *config.Config, pipeline *app.Pipeline) (*App, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"num": func(v float64) string {
			if math.IsNaN(v) {
				return "—"
			}
			return strconv.FormatFloat(v, 'g', 6, 64)
		},
		"pct": func(v float64) string {
			if math.IsNaN(v) {
				return "—"
			}
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"kb": func(n int) string {
			return fmt.Sprintf("%.1f KB", float64(n)/1024.0)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		pipeline:  pipeline,
		store:     NewUploadStore(cfg.Upload.MaxFiles, cfg.Upload.TTL),
		templates: templates,
		cfg:       cfg,
		stop:      make(chan struct{}),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/upload", a.handleUpload)
	a.router.Get("/files", a.handleFiles)
	a.router.Get("/files/{id}", a.handleFileDetail)
	a.router.Post("/files/{id}/convert", a.handleConvert)
	a.router.Post("/files/{id}/summary", a.handleSummary)
}

// Router exposes the HTTP handler, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the expiry sweeper and serves HTTP until the listener
// fails.
func (a *App) Start() error {
	a.store.StartSweeper(a.cfg.Upload.TTL/2, a.stop)
	defer close(a.stop)

	addr := ":" + a.cfg.Server.Port
	log.Printf("Starting DataSweep UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// renderTemplate executes a template into a buffer first so a render
// error never reaches the client as a half-written page.
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}

// renderError renders the shared error page with the given status
func (a *App) renderError(w http.ResponseWriter, status int, title string, detail string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	var buf bytes.Buffer
	data := map[string]interface{}{
		"Title":  title,
		"Detail": detail,
	}
	if err := a.templates.ExecuteTemplate(&buf, "error.html", data); err != nil {
		log.Printf("Template error for error.html: %v", err)
		fmt.Fprintf(w, "<h1>%s</h1><p>%s</p>", template.HTMLEscapeString(title), template.HTMLEscapeString(detail))
		return
	}
	buf.WriteTo(w)
}
