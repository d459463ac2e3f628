package watch

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cratemap/cratemap/pkg/graph"
	"github.com/cratemap/cratemap/pkg/observability"
	"github.com/cratemap/cratemap/pkg/scan"
)

const (
	// DefaultPollInterval is how often workspace fingerprints are recomputed.
	DefaultPollInterval = 400 * time.Millisecond

	// DefaultDebounceInterval is the quiet period required after the last
	// trigger before a rebuild runs.
	DefaultDebounceInterval = 500 * time.Millisecond
)

// Config tunes a single watcher. The zero value selects the defaults.
type Config struct {
	// PollInterval is the fingerprint poll cadence (default 400ms).
	PollInterval time.Duration

	// DebounceInterval is the post-trigger quiet period (default 500ms).
	DebounceInterval time.Duration

	// InitialRevision seeds the revision counter. The first published graph
	// carries InitialRevision+1.
	InitialRevision uint64

	// Logger receives warn and debug output. Defaults to log.Default().
	Logger *log.Logger

	// Now supplies the scheduler clock, overridable in tests.
	// Defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.DebounceInterval <= 0 {
		c.DebounceInterval = DefaultDebounceInterval
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Update is one published snapshot: the freshly built graph and the merged
// reason it was rebuilt. Graphs are immutable and safe to share.
type Update struct {
	Graph   *graph.Graph
	Trigger Trigger
}

// Handle is the caller-facing side of a watcher. It is safe for concurrent
// use and stays safe after the watcher has shut down.
type Handle struct {
	// ID uniquely identifies this watcher in logs and hooks.
	ID string

	commands *queue[command]
}

type command int

const (
	commandNotify command = iota
	commandShutdown
)

// Notify signals that something outside the workspace's file tree happened
// that warrants a refresh. Never blocks.
func (h *Handle) Notify() {
	h.commands.Send(commandNotify)
}

// Shutdown asks the watcher to stop. The update channel is closed once the
// loop has drained. Never blocks; calling it twice is harmless.
func (h *Handle) Shutdown() {
	h.commands.Send(commandShutdown)
}

// Spawn starts a watcher for root and returns its handle together with the
// channel of published updates. The channel closes when the watcher stops,
// either through Shutdown or context cancellation.
func Spawn(ctx context.Context, root string, cfg Config) (*Handle, <-chan Update) {
	cfg = cfg.withDefaults()
	handle := &Handle{
		ID:       uuid.NewString(),
		commands: newQueue[command](),
	}
	updates := newStream[Update]()

	go run(ctx, root, cfg, handle, updates)

	return handle, updates.C()
}

func run(ctx context.Context, root string, cfg Config, handle *Handle, updates *stream[Update]) {
	defer func() {
		handle.commands.Close()
		updates.Close()
		observability.Watch().OnShutdown(handle.ID)
	}()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	revision := cfg.InitialRevision
	pending := TriggerStartup
	deadline := cfg.Now().Add(cfg.DebounceInterval)

	lastFingerprint, err := scan.Fingerprints(root)
	if err != nil {
		// Start from an empty baseline; the first successful poll then
		// registers every file as changed.
		cfg.Logger.Warn("failed to compute initial watch fingerprint",
			"root", root, "error", err)
		lastFingerprint = nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-handle.commands.Ready():
			for _, cmd := range handle.commands.Drain() {
				switch cmd {
				case commandNotify:
					pending = Merge(pending, TriggerExternal)
					deadline = cfg.Now().Add(cfg.DebounceInterval)
					observability.Watch().OnTrigger(handle.ID, TriggerExternal.String())
				case commandShutdown:
					return
				}
			}

		case <-ticker.C:
			fingerprint, err := scan.Fingerprints(root)
			if err != nil {
				cfg.Logger.Warn("failed to collect watch fingerprint",
					"root", root, "error", err)
				break
			}
			if !slices.Equal(fingerprint, lastFingerprint) {
				lastFingerprint = fingerprint
				pending = Merge(pending, TriggerFilesChanged)
				deadline = cfg.Now().Add(cfg.DebounceInterval)
				observability.Watch().OnTrigger(handle.ID, TriggerFilesChanged.String())
			}
		}

		if pending == TriggerNone || cfg.Now().Before(deadline) {
			continue
		}

		start := time.Now()
		g, err := graph.BuildAt(root, revision+1, cfg.Now())
		if err != nil {
			// Keep the previous snapshot; the next detected change retries
			// implicitly.
			cfg.Logger.Warn("graph refresh failed",
				"root", root, "trigger", pending.String(), "error", err)
		} else {
			revision = g.Revision
			updates.Send(Update{Graph: g, Trigger: pending})
		}
		observability.Watch().OnRefresh(handle.ID, pending.String(), revision, time.Since(start), err)
		cfg.Logger.Debug("graph refresh completed",
			"root", root, "trigger", pending.String(), "revision", revision)

		pending = TriggerNone
	}
}
