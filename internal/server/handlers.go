package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/modu-ai/folio/pkg/version"
)

// NewRouter configures all routes. siteRoot is served as static files,
// except hidden and underscore-prefixed paths and the site configuration.
func NewRouter(svc *ProjectService, siteRoot string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	h := &projectHandler{svc: svc, logger: logger}

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/{id}", h.GetProject)
		r.Get("/categories", h.ListCategories)
		r.Get("/health", h.Health)
	})

	r.Handle("/*", staticFiles(siteRoot))
	return r
}

// projectHandler handles the JSON endpoints.
type projectHandler struct {
	svc    *ProjectService
	logger *slog.Logger
}

// ListProjects handles GET /api/projects[?category=name].
func (h *projectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.svc.GetAll(r.URL.Query().Get("category")))
}

// GetProject handles GET /api/projects/{id}.
func (h *projectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, http.StatusNotFound, "Project not found")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, project)
}

// ListCategories handles GET /api/categories.
func (h *projectHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.svc.Categories())
}

// Health handles GET /api/health.
func (h *projectHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":   "ok",
		"version":  version.GetVersion(),
		"commit":   version.GetCommit(),
		"projects": len(h.svc.GetAll("")),
	}
	if built := h.svc.BuiltAt(); !built.IsZero() {
		body["built_at"] = built.UTC().Format(time.RFC3339)
	}
	respondJSON(w, h.logger, http.StatusOK, body)
}

// staticFiles serves the site directory, refusing paths that would expose
// drafts, dotfiles or configuration.
func staticFiles(root string) http.Handler {
	files := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !servable(r.URL.Path) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func servable(urlPath string) bool {
	clean := path.Clean("/" + urlPath)
	for _, seg := range strings.Split(clean, "/") {
		if strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, "_") {
			return false
		}
	}
	base := path.Base(clean)
	return base != "folio.yaml" && base != "folio.yml"
}

// requestLogger logs one debug record per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		logger.Error("encode response", "error", err)
	}
}

// respondError writes an error JSON response.
func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}
