// Package dashboard serves the interactive statistics page, its charts, and a JSON API.
package dashboard

import (
	"embed"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultPreviewRows is the raw preview length used when none is configured.
const DefaultPreviewRows = 20

// Options configures a Server.
type Options struct {
	// PreviewRows is the number of raw rows shown above the filters.
	PreviewRows int
	// AllowedOrigins for the JSON API. Empty means any origin.
	AllowedOrigins []string
	// RequestTimeout bounds each request. Zero means 30s.
	RequestTimeout time.Duration
	// MCP, if set, is mounted at /mcp.
	MCP http.Handler
	Logger *slog.Logger
}

// Server renders views of one loaded table. The table is never modified,
// so concurrent requests share it without locking.
type Server struct {
	table   *dataset.Table
	choices dataset.Choices
	opt     Options
	log     *slog.Logger
	pages   map[string]*template.Template
}

// New builds a Server over t, normalizing it if needed.
func New(t *dataset.Table, opt Options) (*Server, error) {
	norm, err := dataset.Normalize(t)
	if err != nil {
		return nil, err
	}
	if opt.PreviewRows <= 0 {
		opt.PreviewRows = DefaultPreviewRows
	}
	if opt.RequestTimeout <= 0 {
		opt.RequestTimeout = 30 * time.Second
	}
	if len(opt.AllowedOrigins) == 0 {
		opt.AllowedOrigins = []string{"*"}
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pages := map[string]*template.Template{}
	for _, name := range []string{"dashboard", "error"} {
		tmpl, err := parseTemplates("templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return &Server{
		table:   norm,
		choices: dataset.ChoicesOf(norm),
		opt:     opt,
		log:     logger,
		pages:   pages,
	}, nil
}

// Routes returns the HTTP handler for the dashboard.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.opt.RequestTimeout))
		r.Get("/", s.handleDashboard)
		r.Get("/download", s.handleDownload)
		r.Get("/charts/{kind}.svg", s.handleChart)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opt.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(middleware.Timeout(s.opt.RequestTimeout))
		r.Get("/choices", s.handleChoices)
		r.Get("/view", s.handleViewJSON)
	})

	if s.opt.MCP != nil {
		r.Handle("/mcp", s.opt.MCP)
		r.Handle("/mcp/*", s.opt.MCP)
	}
	return r
}

func parseTemplates(files ...string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"num": func(v float64, prec int) string {
			if math.IsNaN(v) {
				return "n/a"
			}
			return formatFloat(v, prec)
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(templateFS, files...)
}
