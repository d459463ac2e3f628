package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/cratemap/cratemap/pkg/graph"
	"github.com/cratemap/cratemap/pkg/watch"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	poll     time.Duration
	debounce time.Duration
}

// newServeCmd creates the serve command, exposing the freshest graph over HTTP.
func newServeCmd(configPath *string) *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve <root>",
		Short: "Serve the freshest workspace graph over HTTP",
		Long: `Serve watches the workspace at <root> and exposes the latest graph
snapshot over HTTP. Only the newest graph is held; there is no storage.

Endpoints:
  GET  /graph    Latest snapshot as JSON (503 until the first build lands)
  GET  /healthz  Liveness probe
  POST /notify   Signal external activity, scheduling a debounced rebuild

Examples:
  cratemap serve .                        # Listen on localhost:7878
  cratemap serve . --addr 0.0.0.0:9000    # Custom listen address`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c, &opts, *configPath, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default localhost:7878)")
	cmd.Flags().DurationVar(&opts.poll, "poll", 0, "fingerprint poll interval (default 400ms)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "debounce quiet period (default 500ms)")

	return cmd
}

// snapshotStore holds the newest published graph. Graphs are immutable, so
// readers share the stored pointer without copying.
type snapshotStore struct {
	mu      sync.RWMutex
	graph   *graph.Graph
	trigger watch.Trigger
}

func (s *snapshotStore) set(g *graph.Graph, trigger watch.Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g
	s.trigger = trigger
}

func (s *snapshotStore) get() (*graph.Graph, watch.Trigger) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, s.trigger
}

// newServeHandler builds the HTTP routing for serve. notify is invoked on
// POST /notify and must never block.
func newServeHandler(store *snapshotStore, notify func()) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/graph", func(w http.ResponseWriter, req *http.Request) {
		g, trigger := store.get()
		if g == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "no snapshot available yet",
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Graph-Trigger", trigger.String())
		_ = graph.WriteGraph(g, w)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/notify", func(w http.ResponseWriter, req *http.Request) {
		notify()
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func runServe(cmd *cobra.Command, opts *serveOpts, configPath, root string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	fileCfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	handle, updates := watch.Spawn(ctx, root, fileCfg.watchConfig(opts.poll, opts.debounce, logger))
	defer handle.Shutdown()

	store := &snapshotStore{}
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for update := range updates {
			store.set(update.Graph, update.Trigger)
			logger.Debug("Snapshot updated",
				"trigger", update.Trigger.String(),
				"revision", update.Graph.Revision)
		}
	}()

	addr := fileCfg.serveAddr(opts.addr)
	server := &http.Server{
		Addr:    addr,
		Handler: newServeHandler(store, handle.Notify),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving workspace graph", "root", root, "addr", addr, "watcher", handle.ID)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	handle.Shutdown()
	<-consumerDone
	return ctx.Err()
}
