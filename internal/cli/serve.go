package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/config"
	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/errors"
	treeio "github.com/matzehuels/treeflow/pkg/io"
)

// reloadDebounce is how long file events are collected before a reload.
const reloadDebounce = 200 * time.Millisecond

const previewPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>treeflow</title>%s</head>
<body style="margin:0"><img src="/diagram.svg" alt="decision tree"></body></html>
`

// previewServer serves one tree document. The tree is swapped by the
// file watcher and read by request handlers.
type previewServer struct {
	mu     sync.RWMutex
	tree   decision.Tree
	loaded time.Time

	path    string
	opts    renderOpts
	reload  bool
	logger  *log.Logger
	metrics *serverMetrics
	con     console
}

func newPreviewServer(t decision.Tree, path string, opts renderOpts, logger *log.Logger) *previewServer {
	return &previewServer{
		tree:    t,
		loaded:  time.Now(),
		path:    path,
		opts:    opts,
		logger:  logger,
		metrics: newServerMetrics(),
		con:     console{io.Discard},
	}
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		reload  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a live preview of a decision tree over HTTP",
		Long: `Serve a decision tree over HTTP.

Endpoints:
  GET /                 preview page
  GET /diagram.svg      canvas drawing
  GET /diagram.dot      Graphviz DOT source
  GET /diagram.gv.svg   Graphviz layout
  GET /api/tree         tree document as JSON
  GET /api/layout       resolved canvas geometry
  GET /api/palette      palette items
  GET /metrics          Prometheus metrics

With --reload, the document is re-read whenever it changes on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Serve.Addr
			}
			if !cmd.Flags().Changed("reload") {
				reload = cfg.Serve.Reload
			}

			var input string
			if len(args) > 0 {
				input = args[0]
			}
			if reload && input == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--reload needs a document to watch")
			}

			t, err := c.loadTree(cmd.Context(), input)
			if err != nil {
				return err
			}
			opts := renderOptsFrom(cfg)
			opts.cache = c.newCache(noCache)
			opts.logger = c.Logger
			defer opts.cache.Close()
			s := newPreviewServer(t, input, opts, c.Logger)
			s.reload = reload
			s.con = console{cmd.OutOrStdout()}
			return s.run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.Default().Serve.Addr, "listen address")
	cmd.Flags().BoolVar(&reload, "reload", false, "reload the document when it changes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "re-run graphviz on every request")
	cmd.ValidArgsFunction = completeDocuments

	return cmd
}

// =============================================================================
// HTTP
// =============================================================================

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/diagram.svg", s.handleDiagram(config.FormatSVG))
	r.Get("/diagram.dot", s.handleDiagram(config.FormatDOT))
	r.Get("/diagram.gv.svg", s.handleDiagram(config.FormatGraphviz))
	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/layout", s.handleDiagram(config.FormatJSON))
		r.Get("/palette", s.handlePalette)
	})
	r.Handle("/metrics", s.metrics.handler())
	return r
}

func (s *previewServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.metrics.observeRequest(chi.RouteContext(r.Context()).RoutePattern(), ww.Status())
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "took", time.Since(start).Round(time.Microsecond))
	})
}

// snapshot returns the current tree and when it was loaded.
func (s *previewServer) snapshot() (decision.Tree, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree, s.loaded
}

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	refresh := ""
	if s.reload {
		refresh = `<meta http-equiv="refresh" content="2">`
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, previewPage, refresh)
}

func (s *previewServer) handleDiagram(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := s.opts
		opts.format = format
		t, loaded := s.snapshot()
		start := time.Now()
		data, err := renderTree(r.Context(), t, opts)
		s.metrics.observeRender(format, time.Since(start))
		if err != nil {
			s.logger.Error("render failed", "format", format, "err", err)
			http.Error(w, errors.UserMessage(err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", formatContentType(format))
		w.Header().Set("Last-Modified", loaded.UTC().Format(http.TimeFormat))
		w.Write(data)
	}
}

func (s *previewServer) handleTree(w http.ResponseWriter, r *http.Request) {
	t, _ := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := treeio.WriteTreeJSON(t, w); err != nil {
		s.logger.Error("write tree", "err", err)
	}
}

func (s *previewServer) handlePalette(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(decision.PaletteItems()); err != nil {
		s.logger.Error("write palette", "err", err)
	}
}

// run serves until ctx is cancelled.
func (s *previewServer) run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes(), ReadHeaderTimeout: 5 * time.Second}

	if s.reload {
		w, err := s.watch(ctx)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.con.info("Serving %s on http://%s", s.describe(), addr)

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeInternal, err, "listen %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func (s *previewServer) describe() string {
	if s.path == "" {
		return "sample tree"
	}
	return filepath.Base(s.path)
}

// =============================================================================
// Reload
// =============================================================================

// watch starts a goroutine that reloads the document after it changes.
// The directory is watched rather than the file, so editors that replace
// the file on save keep triggering reloads.
func (s *previewServer) watch(ctx context.Context) (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "start file watcher")
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		fsw.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", s.path)
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close()
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", filepath.Dir(target))
	}

	go s.processEvents(ctx, fsw, target)
	s.logger.Debug("Watching for changes", "path", target)
	return fsw, nil
}

func (s *previewServer) processEvents(ctx context.Context, fsw *fsnotify.Watcher, target string) {
	ticker := time.NewTicker(reloadDebounce)
	defer ticker.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) == target && event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				pending = true
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Watcher error", "err", err)
		case <-ticker.C:
			if pending {
				pending = false
				s.reloadTree()
			}
		}
	}
}

// reloadTree re-reads the document. A broken document keeps the previous
// tree on display.
func (s *previewServer) reloadTree() {
	t, err := treeio.ImportTree(s.path)
	s.metrics.observeReload(err)
	if err != nil {
		s.logger.Warn("Reload failed, keeping previous tree", "err", errors.UserMessage(err))
		return
	}
	s.mu.Lock()
	s.tree = t
	s.loaded = time.Now()
	s.mu.Unlock()
	s.logger.Info("Reloaded", "path", filepath.Base(s.path), "nodes", len(t.Nodes), "edges", len(t.Edges))
}
