// ABOUTME: CLI entrypoint for the engmanager content editor with TUI and server modes.
// ABOUTME: Wires together the content store, revision history, web server, and Bubble Tea editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matthewharwood/engmanager.xyz-sub002/content"
	"github.com/matthewharwood/engmanager.xyz-sub002/tui"
	"github.com/matthewharwood/engmanager.xyz-sub002/web"
)

var version = "dev"

// cliOptions holds all CLI configuration parsed from flags.
type cliOptions struct {
	serverMode  bool
	route       string
	configPath  string
	dataDir     string
	plainEditor bool
	showVersion bool
}

func main() {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("engmanager %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(opts))
}

// parseFlags parses command-line flags and returns populated options.
func parseFlags() cliOptions {
	var opts cliOptions

	fs := flag.NewFlagSet("engmanager", flag.ContinueOnError)
	fs.BoolVar(&opts.serverMode, "serve", false, "Start the site and admin HTTP server")
	fs.StringVar(&opts.route, "route", "homepage", "Route to edit in TUI mode")
	fs.StringVar(&opts.configPath, "config", "engmanager.yaml", "Path to the YAML config file")
	fs.StringVar(&opts.dataDir, "data-dir", "", "Data directory (overrides config)")
	fs.BoolVar(&opts.plainEditor, "plain", false, "Use the plain JSON editor without syntax highlighting")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	return opts
}

// run dispatches to the appropriate mode. Returns an exit code.
func run(opts cliOptions) int {
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}

	if opts.serverMode {
		return runServer(cfg)
	}
	return runEditor(cfg, opts)
}

// runEditor starts the Bubble Tea content editor for one route.
func runEditor(cfg Config, opts cliOptions) int {
	// TUI owns the terminal, so the store's diagnostics go to a file instead
	// of stderr.
	logger, closeLog := editorLogger(cfg.DataDir)
	defer closeLog()

	store := content.NewStore(cfg.DataDir, logger)
	if _, ok := store.FindRoute(opts.route); !ok {
		fmt.Fprintf(os.Stderr, "error: route %q not found\n", opts.route)
		return 1
	}

	initial := store.LoadBlocks(opts.route)
	if initial.Len() == 0 && opts.route == "homepage" {
		initial = content.DefaultHomepage()
	}

	formatted, err := initial.MarshalIndent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var surface tui.Surface
	if opts.plainEditor {
		surface = tui.NewEditorModel(string(formatted), cfg.Debounce())
	} else {
		surface = tui.NewRichEditorModel(string(formatted), cfg.Debounce())
	}

	model := tui.NewAppModel(opts.route, initial, surface, store, cfg.BannerDuration())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runServer starts the site and admin HTTP server with graceful shutdown on
// SIGINT/SIGTERM.
func runServer(cfg Config) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store := content.NewStore(cfg.DataDir, logger)

	history, err := content.OpenHistory(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = history.Close() }()

	server, err := web.NewServer(web.ServerConfig{
		Addr:    cfg.Addr,
		Store:   store,
		History: history,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	fmt.Fprintf(os.Stderr, "listening on %s\n", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// editorLogger returns a file-backed slog.Logger for TUI mode and a cleanup
// func. Falls back to a discard logger when the log file cannot be opened.
func editorLogger(dataDir string) (*slog.Logger, func()) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "editor.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }
}
