// ABOUTME: HTTP server for the published site and the admin content API behind a single chi router.
// ABOUTME: Public routes render stored blocks to HTML; admin routes read, publish, and audit content.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
	"github.com/matthewharwood/engmanager.xyz-sub002/content"
	"github.com/matthewharwood/engmanager.xyz-sub002/render"
)

// Server serves the published pages and the admin editing surface.
type Server struct {
	store     *content.Store
	history   *content.History
	renderer  *render.Renderer
	templates *TemplateEngine
	router    chi.Router
	addr      string
	logger    *slog.Logger
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr    string // listen address (default: "127.0.0.1:8080")
	Store   *content.Store
	History *content.History // optional; publishes are not audited when nil
	Logger  *slog.Logger
}

// NewServer creates a Server with the given configuration and sets up routing.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("Store must not be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		store:     cfg.Store,
		history:   cfg.History,
		renderer:  render.New(),
		templates: tmpl,
		addr:      cfg.Addr,
		logger:    cfg.Logger,
	}
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured address with
// timeouts to prevent resource exhaustion from slow clients.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return srv.ListenAndServe()
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", s.handleAdminHome)
		r.Get("/route/", s.handleAdminHome)
		r.Get("/route/{name}", s.handleAdminEditor)

		r.Route("/api/{name}", func(r chi.Router) {
			r.Get("/", s.handleContentGet)
			r.Post("/", s.handleContentPublish)
			r.Get("/revisions", s.handleRevisionList)
			r.Get("/revisions/{revisionID}", s.handleRevisionGet)
		})
	})

	// Everything else resolves against the route table.
	r.Get("/*", s.handlePage)

	return r
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePage renders the published page whose route path matches the request.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var route content.Route
	found := false
	for _, candidate := range s.store.Routes() {
		if candidate.Path == r.URL.Path {
			route = candidate
			found = true
			break
		}
	}
	if !found {
		http.NotFound(w, r)
		return
	}

	blocks := s.store.LoadBlocks(route.Name)
	page, err := s.renderer.Page(route.Name, blocks)
	if err != nil {
		s.logger.Error("render page", "route", route.Name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

// handleAdminHome lists every editable route.
func (s *Server) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:  "Content Admin",
		Routes: s.store.Routes(),
	}
	if err := s.templates.Render(w, "admin_home.html", data); err != nil {
		log.Printf("error rendering admin_home: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleAdminEditor renders the editor page for one route, seeded with the
// current published content.
func (s *Server) handleAdminEditor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	route, ok := s.store.FindRoute(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	blocks := s.store.LoadBlocks(name)
	formatted, err := blocks.MarshalIndent()
	if err != nil {
		s.logger.Error("marshal blocks for editor", "route", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := PageData{
		Title:      "Edit " + name,
		Route:      &route,
		Blocks:     blocks.Blocks,
		BlocksJSON: string(formatted),
	}
	if err := s.templates.Render(w, "admin_editor.html", data); err != nil {
		log.Printf("error rendering admin_editor: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleContentGet returns the current block collection for a route.
func (s *Server) handleContentGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.store.FindRoute(name); !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("route %q not found", name))
		return
	}

	blocks := s.store.LoadBlocks(name)
	payload, err := blocks.Marshal()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to serialize content")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// publishResponse is the JSON body returned by a successful publish.
type publishResponse struct {
	Status     string `json:"status"`
	Route      string `json:"route"`
	PublishID  string `json:"publishId"`
	RevisionID string `json:"revisionId,omitempty"`
}

// handleContentPublish validates and persists a new block collection for a
// route. Invalid payloads never touch the stored content.
func (s *Server) handleContentPublish(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.store.FindRoute(name); !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("route %q not found", name))
		return
	}

	// Cap request body at 1MB to prevent oversized payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	blocks, err := block.ParseCollection(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid content payload: %v", err))
		return
	}

	if err := s.store.SaveBlocks(name, blocks); err != nil {
		s.logger.Error("save blocks", "route", name, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to persist content")
		return
	}

	// Each publish gets a unique id for log correlation, independent of the
	// revision id which only exists when history is configured.
	publishID := uuid.New().String()
	resp := publishResponse{Status: "published", Route: name, PublishID: publishID}

	if s.history != nil {
		revisionID, err := s.history.Record(name, blocks)
		if err != nil {
			// The content is already saved; a failed audit write is logged
			// but does not fail the publish.
			s.logger.Error("record revision", "route", name, "err", err)
		} else {
			resp.RevisionID = revisionID
		}
	}

	s.logger.Info("content published", "route", name, "publish_id", publishID, "revision_id", resp.RevisionID, "blocks", blocks.Len())

	w.Header().Set("X-Publish-ID", publishID)
	s.writeJSON(w, http.StatusOK, resp)
}

// handleRevisionList returns recent publish revisions for a route, newest
// first.
func (s *Server) handleRevisionList(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, http.StatusNotFound, "revision history is not enabled")
		return
	}

	name := chi.URLParam(r, "name")
	if _, ok := s.store.FindRoute(name); !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("route %q not found", name))
		return
	}

	revisions, err := s.history.List(name, 20)
	if err != nil {
		s.logger.Error("list revisions", "route", name, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load revisions")
		return
	}

	type revisionSummary struct {
		ID          string    `json:"id"`
		Route       string    `json:"route"`
		PublishedAt time.Time `json:"publishedAt"`
	}
	out := make([]revisionSummary, 0, len(revisions))
	for _, rev := range revisions {
		out = append(out, revisionSummary{ID: rev.ID, Route: rev.Route, PublishedAt: rev.PublishedAt})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleRevisionGet returns one revision including its full payload.
func (s *Server) handleRevisionGet(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, http.StatusNotFound, "revision history is not enabled")
		return
	}

	revisionID := chi.URLParam(r, "revisionID")
	rev, ok, err := s.history.Get(revisionID)
	if err != nil {
		s.logger.Error("get revision", "revision_id", revisionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load revision")
		return
	}
	if !ok || rev.Route != chi.URLParam(r, "name") {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("revision %q not found", revisionID))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":          rev.ID,
		"route":       rev.Route,
		"publishedAt": rev.PublishedAt,
		"payload":     json.RawMessage(rev.Payload),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
