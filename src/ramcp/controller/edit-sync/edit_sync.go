// Package editsync forwards relevant host filesystem edits to the analyzer.
package editsync

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/lspmux/ramcp/src/ramcp/entity"
	analyzerclient "github.com/lspmux/ramcp/src/ramcp/gateway/analyzer-client"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "edit-sync"

// Metadata files whose changes invalidate the project model rather than a
// single document.
var _projectFiles = map[string]bool{
	"Cargo.toml":        true,
	"Cargo.lock":        true,
	"rust-project.json": true,
}

// Controller receives Edit Events from the host environment and keeps the
// analyzer's view of the workspace current. Notification only: it makes no
// freshness promise, and a request racing an edit may still see the previous
// snapshot.
type Controller interface {
	// StartWatching begins observing the workspace tree for edits. New
	// subdirectories are picked up as they appear; dot-directories and
	// build output are skipped.
	StartWatching(ctx context.Context, workspaceRoot string) error

	// OnEdit classifies one event and forwards it when relevant. It never
	// returns an error to the event source: sync failures end here, logged
	// and counted.
	OnEdit(ctx context.Context, event entity.EditEvent)
}

// Params are inbound parameters to initialize an edit-sync controller.
type Params struct {
	fx.In

	Gateway   analyzerclient.Gateway
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type controller struct {
	gateway analyzerclient.Gateway
	logger  *zap.SugaredLogger
	stats   tally.Scope

	mu            sync.Mutex
	watcher       *fsnotify.Watcher
	workspaceRoot string
	done          chan struct{}
	loopDone      chan struct{}
}

// New creates a new controller for edit sync.
func New(p Params) Controller {
	c := &controller{
		gateway: p.Gateway,
		logger:  p.Logger.With("plugin", _nameKey),
		stats:   p.Stats.SubScope("edit_sync"),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.stopWatching()
		},
	})

	return c
}

// StartWatching sets up a recursive fsnotify watch over the workspace.
func (c *controller) StartWatching(ctx context.Context, workspaceRoot string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating workspace watcher: %w", err)
	}

	if err := addRecursive(watcher, workspaceRoot); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %q: %w", workspaceRoot, err)
	}

	c.watcher = watcher
	c.workspaceRoot = workspaceRoot
	c.done = make(chan struct{})
	c.loopDone = make(chan struct{})
	go c.watchLoop(watcher, c.done, c.loopDone)

	c.logger.Infow("watching workspace for edits", "workspaceRoot", workspaceRoot)
	return nil
}

func (c *controller) stopWatching() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher == nil {
		return nil
	}
	close(c.done)
	err := c.watcher.Close()
	<-c.loopDone
	c.watcher = nil
	return err
}

func (c *controller) watchLoop(watcher *fsnotify.Watcher, done <-chan struct{}, loopDone chan<- struct{}) {
	defer close(loopDone)
	ctx := context.Background()

	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			c.handleFsEvent(ctx, watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warnw("workspace watcher error", "error", err)
		}
	}
}

func (c *controller) handleFsEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		// New directories join the watch so edits under them are seen.
		if isWatchableDir(event.Name) {
			if err := watcher.Add(event.Name); err != nil {
				c.logger.Warnw("unable to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
		c.OnEdit(ctx, entity.EditEvent{Path: event.Name, Kind: entity.EditEventCreate})
	case event.Op.Has(fsnotify.Write):
		c.OnEdit(ctx, entity.EditEvent{Path: event.Name, Kind: entity.EditEventModify})
	}
}

// OnEdit forwards a relevant edit to the analyzer, at most once per event.
func (c *controller) OnEdit(ctx context.Context, event entity.EditEvent) {
	if !relevant(event.Path) {
		c.stats.Counter("ignored").Inc(1)
		return
	}
	c.stats.Counter("relevant").Inc(1)

	var err error
	if isProjectFile(event.Path) {
		err = c.gateway.DidChangeWatchedFiles(ctx, []protocol.FileEvent{
			{URI: uri.File(event.Path), Type: fileChangeType(event.Kind)},
		})
	} else {
		err = c.gateway.EnsureFileOpen(ctx, event.Path)
	}
	if err != nil {
		// The sole swallow point: an edit that cannot be forwarded is
		// logged and dropped, never surfaced to the event source.
		c.stats.Counter("resync_failed").Inc(1)
		c.logger.Warnw("unable to sync edit", "path", event.Path, "kind", event.Kind, "error", err)
	}
}

// relevant reports whether an edit can affect analysis results. Only absolute
// paths qualify; everything else is ignored without contacting the analyzer.
func relevant(path string) bool {
	if path == "" || !filepath.IsAbs(path) {
		return false
	}
	if strings.EqualFold(filepath.Ext(path), ".rs") {
		return true
	}
	base := filepath.Base(path)
	if _projectFiles[base] {
		return true
	}
	// Cargo configuration lives under a dot-directory but still shapes the
	// project model.
	if base == "config.toml" && filepath.Base(filepath.Dir(path)) == ".cargo" {
		return true
	}
	return false
}

func isProjectFile(path string) bool {
	base := filepath.Base(path)
	if _projectFiles[base] {
		return true
	}
	return base == "config.toml" && filepath.Base(filepath.Dir(path)) == ".cargo"
}

func fileChangeType(kind entity.EditEventKind) protocol.FileChangeType {
	if kind == entity.EditEventCreate {
		return protocol.FileChangeTypeCreated
	}
	return protocol.FileChangeTypeChanged
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && !isWatchableDirName(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isWatchableDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	return isWatchableDirName(filepath.Base(path))
}

// isWatchableDirName excludes build output and hidden directories, with an
// exception for .cargo since its config.toml shapes the project model.
func isWatchableDirName(name string) bool {
	if name == "target" {
		return false
	}
	if strings.HasPrefix(name, ".") && name != ".cargo" {
		return false
	}
	return true
}
