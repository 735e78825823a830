// Package bootstrap converges the workspace onto a running backing analyzer.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/lspmux/ramcp/src/ramcp/entity"
	analyzerclient "github.com/lspmux/ramcp/src/ramcp/gateway/analyzer-client"
	"github.com/lspmux/ramcp/src/ramcp/internal/clock"
	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/internal/executor"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs"
	"github.com/lspmux/ramcp/src/ramcp/internal/serverinfofile"
	"github.com/lspmux/ramcp/src/ramcp/repository/analyzer"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey            = "bootstrap"
	_configKeyBootstrap = "bootstrap"
	_configKeySocket    = "analyzer.socket"

	_infoKeyState         = "bootstrap-state"
	_infoKeySocket        = "analyzer-socket"
	_infoKeyWorkspaceRoot = "workspace-root"
)

// Config defines this package's portion of the service configuration.
type Config struct {
	MuxBinary        string   `yaml:"muxBinary"`
	MuxArgs          []string `yaml:"muxArgs"`
	SystemdUnit      string   `yaml:"systemdUnit"`
	WarmupWaitMillis int      `yaml:"warmupWaitMillis"`
	WarmupAttempts   int      `yaml:"warmupAttempts"`
}

// Controller brings the backing analyzer to a ready state for one workspace.
//
// The analyzer process is shared and unowned: it is adopted when already
// running, started only when every probe fails, and never stopped by ramcp.
type Controller interface {
	// EnsureReady probes for a running analyzer and escalates through the
	// systemd unit and a direct detached spawn until one answers. Idempotent:
	// a repeat call re-probes and adopts without spawning. Every path that
	// creates or adopts the process goes through here.
	EnsureReady(ctx context.Context, workspaceRoot string) (*entity.BootstrapResult, error)
}

// Params are inbound parameters to initialize a bootstrap controller.
type Params struct {
	fx.In

	Analyzers      analyzer.Repository
	Gateway        analyzerclient.Gateway
	Executor       executor.Executor
	Clock          clock.Clock
	FS             fs.RamcpFS
	ServerInfoFile serverinfofile.ServerInfoFile
	Logger         *zap.SugaredLogger
	Stats          tally.Scope
	Config         config.Provider
}

type controller struct {
	analyzers analyzer.Repository
	gateway   analyzerclient.Gateway
	executor  executor.Executor
	clock     clock.Clock
	fs        fs.RamcpFS
	infoFile  serverinfofile.ServerInfoFile
	logger    *zap.SugaredLogger
	stats     tally.Scope

	mu             sync.Mutex
	muxBinary      string
	muxArgs        []string
	systemdUnit    string
	socket         string
	warmupWait     time.Duration
	warmupAttempts int
}

// New creates a new controller for analyzer bootstrap.
func New(p Params) (Controller, error) {
	c := &controller{
		analyzers: p.Analyzers,
		gateway:   p.Gateway,
		executor:  p.Executor,
		clock:     p.Clock,
		fs:        p.FS,
		infoFile:  p.ServerInfoFile,
		logger:    p.Logger.With("plugin", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
	}

	if err := c.processConfig(p.Config); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *controller) processConfig(cfg config.Provider) error {
	var bc Config
	if err := cfg.Get(_configKeyBootstrap).Populate(&bc); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyBootstrap, err)
	}
	if bc.MuxBinary == "" {
		return fmt.Errorf("missing field %q in config", _configKeyBootstrap+".muxBinary")
	}
	if err := cfg.Get(_configKeySocket).Populate(&c.socket); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeySocket, err)
	}
	if c.socket == "" {
		return fmt.Errorf("missing field %q in config", _configKeySocket)
	}

	c.muxBinary = bc.MuxBinary
	c.muxArgs = bc.MuxArgs
	if len(c.muxArgs) == 0 {
		c.muxArgs = []string{"server"}
	}
	c.systemdUnit = bc.SystemdUnit
	c.warmupWait = time.Duration(bc.WarmupWaitMillis) * time.Millisecond
	if c.warmupWait <= 0 {
		c.warmupWait = 500 * time.Millisecond
	}
	c.warmupAttempts = bc.WarmupAttempts
	if c.warmupAttempts <= 0 {
		c.warmupAttempts = 10
	}
	return nil
}

// EnsureReady runs the probe/start/adopt sequence. Serialized so concurrent
// sessions cannot race a spawn against a probe.
func (c *controller) EnsureReady(ctx context.Context, workspaceRoot string) (*entity.BootstrapResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.updateInfo(_infoKeyState, string(entity.BootstrapStateStarting))
	c.updateInfo(_infoKeyWorkspaceRoot, workspaceRoot)

	// An already-running analyzer always wins over starting a new one.
	if err := c.gateway.Probe(ctx); err == nil {
		return c.ready(ctx, workspaceRoot, entity.BootstrapOutcomeAdopted)
	}

	binPath, err := c.fs.LookPath(c.muxBinary)
	if err != nil {
		c.updateInfo(_infoKeyState, string(entity.BootstrapStateNotInstalled))
		c.stats.Counter("not_installed").Inc(1)
		c.logger.Warnw("multiplexer binary not found", "binary", c.muxBinary)
		return &entity.BootstrapResult{State: entity.BootstrapStateNotInstalled},
			&errors.NotInstalledError{Binary: c.muxBinary}
	}

	if c.systemdUnit != "" {
		cmd := exec.Command("systemctl", "--user", "start", c.systemdUnit)
		if err := c.executor.RunCommand(cmd, os.Environ()); err != nil {
			c.logger.Infow("systemd unit start failed, falling back to direct spawn",
				"unit", c.systemdUnit, "error", err)
		} else if c.awaitSocket(ctx) {
			return c.ready(ctx, workspaceRoot, entity.BootstrapOutcomeUnitStarted)
		}
	}

	// Launch-and-release: the child is its own session leader with no stdio
	// attached, and liveness is only ever re-derived by probing the socket.
	cmd := exec.Command(binPath, c.muxArgs...)
	if err := c.executor.StartDetached(cmd); err != nil {
		c.logger.Warnw("direct spawn failed", "binary", binPath, "error", err)
	} else if c.awaitSocket(ctx) {
		return c.ready(ctx, workspaceRoot, entity.BootstrapOutcomeSpawned)
	}

	c.updateInfo(_infoKeyState, string(entity.BootstrapStateUnavailable))
	c.stats.Counter("unavailable").Inc(1)
	return &entity.BootstrapResult{State: entity.BootstrapStateUnavailable},
		&errors.UnreachableError{Socket: c.socket, Err: errors.New("failed to start")}
}

// awaitSocket re-probes until the analyzer answers or the warm-up budget runs out.
func (c *controller) awaitSocket(ctx context.Context) bool {
	for i := 0; i < c.warmupAttempts; i++ {
		if err := c.gateway.Probe(ctx); err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		c.clock.Sleep(c.warmupWait)
	}
	return false
}

func (c *controller) ready(ctx context.Context, workspaceRoot string, outcome entity.BootstrapOutcome) (*entity.BootstrapResult, error) {
	stored, err := c.analyzers.Register(ctx, &entity.Analyzer{
		WorkspaceRoot: workspaceRoot,
		Socket:        c.socket,
	})
	if err != nil {
		return nil, err
	}

	c.stats.Counter(string(outcome)).Inc(1)
	c.updateInfo(_infoKeyState, string(entity.BootstrapStateReady))
	c.updateInfo(_infoKeySocket, stored.Socket)
	c.logger.Infow("analyzer ready", "outcome", outcome, "socket", stored.Socket, "workspaceRoot", workspaceRoot)

	return &entity.BootstrapResult{
		State:    entity.BootstrapStateReady,
		Outcome:  outcome,
		Analyzer: stored,
	}, nil
}

// updateInfo writes a field to the server info file. Best effort.
func (c *controller) updateInfo(key, value string) {
	if err := c.infoFile.UpdateField(key, value); err != nil {
		c.logger.Warnw("unable to update server info file", "key", key, "error", err)
	}
}
