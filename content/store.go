// ABOUTME: File-backed persistence for routes and per-route block content with graceful fallbacks.
// ABOUTME: Missing or invalid files degrade to defaults with a logged diagnostic instead of failing a page.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

// Route is one editable page: its URL path, the name used in admin URLs,
// and the content files backing it.
type Route struct {
	Path string `json:"path"`
	Name string `json:"name"`
	// Content file paths relative to the data dir, camelCased on the wire
	// for consistency with the editor frontend.
	BlockIDs []string `json:"blockIds"`
}

// Store reads and writes route definitions and block content under a data
// directory: routes.json at the root, content at content/{name}.json.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dataDir: dataDir, logger: logger}
}

// DataDir returns the store's root directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) routesPath() string {
	return filepath.Join(s.dataDir, "routes.json")
}

// Routes loads routes.json. A missing file yields the default route set; an
// unreadable or invalid file is logged and also falls back to the defaults.
func (s *Store) Routes() []Route {
	data, err := os.ReadFile(s.routesPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("read routes.json", "err", err)
		}
		return DefaultRoutes()
	}

	var routes []Route
	if err := json.Unmarshal(data, &routes); err != nil {
		s.logger.Error("parse routes.json", "err", err)
		return DefaultRoutes()
	}
	return routes
}

// SaveRoutes writes routes.json, creating the data dir as needed.
func (s *Store) SaveRoutes(routes []Route) error {
	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal routes: %w", err)
	}
	return s.writeFile(s.routesPath(), data)
}

// FindRoute returns the route with the given name.
func (s *Store) FindRoute(name string) (Route, bool) {
	for _, r := range s.Routes() {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// contentPath resolves the content file for a route name via its first
// blockId entry.
func (s *Store) contentPath(name string) (string, error) {
	route, ok := s.FindRoute(name)
	if !ok {
		return "", fmt.Errorf("route %q not found in routes.json", name)
	}
	if len(route.BlockIDs) == 0 {
		return "", fmt.Errorf("route %q has no blockIds", name)
	}
	return filepath.Join(s.dataDir, filepath.FromSlash(route.BlockIDs[0])), nil
}

// LoadBlocks loads the block collection for a route. Fallback behavior
// mirrors publishing-site expectations: unknown route, missing file, and
// invalid JSON all yield an empty collection, with non-routine causes
// logged, so a page always renders.
func (s *Store) LoadBlocks(name string) block.Collection {
	empty := block.Collection{Blocks: []block.Block{}}

	path, err := s.contentPath(name)
	if err != nil {
		s.logger.Error("resolve content path", "route", name, "err", err)
		return empty
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Absent content is expected on first run.
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("read content file", "route", name, "path", path, "err", err)
		}
		return empty
	}

	c, err := block.ParseCollection(data)
	if err != nil {
		s.logger.Error("parse content file", "route", name, "path", path, "err", err)
		return empty
	}
	return c
}

// SaveBlocks persists the collection for a route. The write goes through a
// temp file and rename so a crash mid-write never leaves a torn content
// file behind.
func (s *Store) SaveBlocks(name string, c block.Collection) error {
	path, err := s.contentPath(name)
	if err != nil {
		return err
	}
	data, err := c.MarshalIndent()
	if err != nil {
		return fmt.Errorf("marshal blocks for %q: %w", name, err)
	}
	return s.writeFile(path, data)
}

// Publish satisfies the editor's Publisher contract.
func (s *Store) Publish(name string, c block.Collection) error {
	return s.SaveBlocks(name, c)
}

func (s *Store) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".content-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// DefaultRoutes returns the route set used when routes.json is absent.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: "homepage", BlockIDs: []string{"content/homepage.json"}},
	}
}

// DefaultHomepage returns the seed blocks shown before anything has been
// published.
func DefaultHomepage() block.Collection {
	return block.Collection{Blocks: []block.Block{
		{Type: block.TypeHeader, Props: &block.HeaderProps{
			Headline: "Eng Manager",
			Button: block.ButtonProps{
				Href:      "/contact",
				Text:      "Get in touch",
				AriaLabel: "Contact us to discuss your engineering needs",
			},
		}},
		{Type: block.TypeHero, Props: &block.HeroProps{
			Headline:    "Building world-class engineering teams",
			Subheadline: "Leadership through example, expertise, and empathy",
		}},
	}}
}
