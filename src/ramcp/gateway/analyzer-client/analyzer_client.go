package analyzerclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"hash/fnv"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs"
	ramcpprotocol "github.com/lspmux/ramcp/src/ramcp/internal/protocol"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _configKeyAnalyzer = "analyzer"

// Gateway is used to send outbound LSP requests to the backing analyzer.
// A single connection to the multiplexer socket is shared by all callers.
type Gateway interface {
	// Probe checks whether anything is listening on the analyzer socket,
	// within a short bounded timeout. It never starts anything.
	Probe(ctx context.Context) error
	// Connect dials the analyzer socket and performs the LSP handshake.
	// Calling Connect on an established connection is a no-op.
	Connect(ctx context.Context, workspaceRoot string) error

	// EnsureFileOpen makes the analyzer's view of the file match its current
	// disk content, sending didOpen on first access and didChange only when
	// the content hash moved.
	EnsureFileOpen(ctx context.Context, path string) error
	// DidChangeWatchedFiles forwards filesystem events for project metadata.
	DidChangeWatchedFiles(ctx context.Context, events []protocol.FileEvent) error

	Diagnostics(ctx context.Context, path string) ([]protocol.Diagnostic, error)
	Hover(ctx context.Context, path string, line, character uint32) (*protocol.Hover, error)
	Definition(ctx context.Context, path string, line, character uint32) ([]protocol.Location, error)
	References(ctx context.Context, path string, line, character uint32) ([]protocol.Location, error)

	// Shutdown performs the LSP shutdown/exit sequence and closes the
	// connection. Best effort; safe to call when never connected.
	Shutdown(ctx context.Context) error
}

// Config defines this package's portion of the service configuration.
type Config struct {
	Socket                string `yaml:"socket"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	ProbeTimeoutMillis    int    `yaml:"probeTimeoutMillis"`
}

type fileState struct {
	version int32
	hash    uint64
}

type gateway struct {
	socket         string
	requestTimeout time.Duration
	probeTimeout   time.Duration

	mu            sync.Mutex
	conn          jsonrpc2.Conn
	server        protocol.Server
	workspaceRoot string
	openedFiles   map[string]*fileState

	dial   func(ctx context.Context, socket string) (net.Conn, error)
	fs     fs.RamcpFS
	logger *zap.SugaredLogger
}

// Params define values to be used by the analyzer Gateway.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	FS        fs.RamcpFS
}

// New returns a Gateway for the backing analyzer reached through the
// multiplexer socket.
func New(p Params) (Gateway, error) {
	g := &gateway{
		openedFiles: make(map[string]*fileState),
		dial:        dialUnix,
		fs:          p.FS,
		logger:      p.Logger,
	}

	if err := g.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: g.Shutdown,
	})

	return g, nil
}

func (g *gateway) processConfig(cfg config.Provider) error {
	var c Config
	if err := cfg.Get(_configKeyAnalyzer).Populate(&c); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyAnalyzer, err)
	}
	if c.Socket == "" {
		return fmt.Errorf("missing field %q in config", _configKeyAnalyzer+".socket")
	}

	g.socket = c.Socket
	g.requestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	if g.requestTimeout <= 0 {
		g.requestTimeout = 30 * time.Second
	}
	g.probeTimeout = time.Duration(c.ProbeTimeoutMillis) * time.Millisecond
	if g.probeTimeout <= 0 {
		g.probeTimeout = 500 * time.Millisecond
	}
	return nil
}

func dialUnix(ctx context.Context, socket string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "unix", socket)
}

// Probe dials the socket within the probe timeout and closes immediately.
func (g *gateway) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.probeTimeout)
	defer cancel()

	conn, err := g.dial(ctx, g.socket)
	if err != nil {
		return &errors.UnreachableError{Socket: g.socket, Err: err}
	}
	return conn.Close()
}

// Connect establishes the shared analyzer connection and runs the
// initialize/initialized handshake against the workspace root.
func (g *gateway) Connect(ctx context.Context, workspaceRoot string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.server != nil {
		return nil
	}

	netConn, err := g.dial(ctx, g.socket)
	if err != nil {
		return &errors.UnreachableError{Socket: g.socket, Err: err}
	}

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(netConn))
	conn.Go(ctx, g.handleServerMessage)
	server := protocol.ServerDispatcher(conn, g.logger.Desugar())

	initCtx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	rootURI := uri.File(workspaceRoot)
	_, err = server.Initialize(initCtx, &protocol.InitializeParams{
		RootURI:      rootURI,
		Capabilities: protocol.ClientCapabilities{},
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{URI: string(rootURI), Name: filepath.Base(workspaceRoot)},
		},
	})
	if err != nil {
		conn.Close()
		return g.wrapCallError(protocol.MethodInitialize, err)
	}
	if err := server.Initialized(initCtx, &protocol.InitializedParams{}); err != nil {
		conn.Close()
		return g.wrapCallError(protocol.MethodInitialized, err)
	}

	g.conn = conn
	g.server = server
	g.workspaceRoot = workspaceRoot
	g.logger.Infow("analyzer connection established", "socket", g.socket, "workspaceRoot", workspaceRoot)
	return nil
}

// handleServerMessage answers analyzer-initiated traffic. Calls get a method
// not found reply; notifications such as publishDiagnostics are dropped since
// diagnostics are pulled on demand.
func (g *gateway) handleServerMessage(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if _, ok := req.(*jsonrpc2.Call); ok {
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	}
	g.logger.Debugw("analyzer notification ignored", "method", req.Method())
	return nil
}

// EnsureFileOpen reads the file from disk and syncs it into the analyzer.
func (g *gateway) EnsureFileOpen(ctx context.Context, path string) error {
	server, err := g.currentServer()
	if err != nil {
		return err
	}

	content, err := g.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	hasher := fnv.New64a()
	hasher.Write(content)
	contentHash := hasher.Sum64()

	g.mu.Lock()
	state, opened := g.openedFiles[path]
	if opened && state.hash == contentHash {
		// Unchanged since the last notification.
		g.mu.Unlock()
		return nil
	}

	if opened {
		state.version++
		state.hash = contentHash
		version := state.version
		g.mu.Unlock()

		err = server.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri.File(path)},
				Version:                version,
			},
			ContentChanges: []protocol.TextDocumentContentChangeEvent{
				{Text: string(content)},
			},
		})
		if err != nil {
			return g.wrapCallError(protocol.MethodTextDocumentDidChange, err)
		}
		return nil
	}

	g.openedFiles[path] = &fileState{version: 0, hash: contentHash}
	g.mu.Unlock()

	err = server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri.File(path),
			LanguageID: detectLanguageID(path),
			Version:    0,
			Text:       string(content),
		},
	})
	if err != nil {
		return g.wrapCallError(protocol.MethodTextDocumentDidOpen, err)
	}
	return nil
}

// DidChangeWatchedFiles forwards project metadata events to the analyzer.
func (g *gateway) DidChangeWatchedFiles(ctx context.Context, events []protocol.FileEvent) error {
	server, err := g.currentServer()
	if err != nil {
		return err
	}

	changes := make([]*protocol.FileEvent, len(events))
	for i := range events {
		changes[i] = &events[i]
	}
	if err := server.DidChangeWatchedFiles(ctx, &protocol.DidChangeWatchedFilesParams{
		Changes: changes,
	}); err != nil {
		return g.wrapCallError(protocol.MethodWorkspaceDidChangeWatchedFiles, err)
	}
	return nil
}

// Diagnostics pulls current diagnostics for the file. The method is not part
// of protocol.Server, so the request goes out over the raw connection.
func (g *gateway) Diagnostics(ctx context.Context, path string) ([]protocol.Diagnostic, error) {
	g.mu.Lock()
	conn := g.conn
	g.mu.Unlock()
	if conn == nil {
		return nil, &errors.UnreachableError{Socket: g.socket, Err: errors.New("not connected")}
	}

	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	params := ramcpprotocol.DocumentDiagnosticParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri.File(path)},
	}
	var report ramcpprotocol.DocumentDiagnosticReport
	if _, err := conn.Call(ctx, ramcpprotocol.MethodTextDocumentDiagnostic, params, &report); err != nil {
		return nil, g.wrapCallError(ramcpprotocol.MethodTextDocumentDiagnostic, err)
	}

	if report.Kind != ramcpprotocol.DiagnosticReportKindFull {
		return nil, nil
	}
	return report.Items, nil
}

// Hover requests hover content at the given zero-based position.
func (g *gateway) Hover(ctx context.Context, path string, line, character uint32) (*protocol.Hover, error) {
	server, err := g.currentServer()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	hover, err := server.Hover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: textDocumentPosition(path, line, character),
	})
	if err != nil {
		return nil, g.wrapCallError(protocol.MethodTextDocumentHover, err)
	}
	return hover, nil
}

// Definition requests definition locations for the symbol at the position.
func (g *gateway) Definition(ctx context.Context, path string, line, character uint32) ([]protocol.Location, error) {
	server, err := g.currentServer()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	locations, err := server.Definition(ctx, &protocol.DefinitionParams{
		TextDocumentPositionParams: textDocumentPosition(path, line, character),
	})
	if err != nil {
		return nil, g.wrapCallError(protocol.MethodTextDocumentDefinition, err)
	}
	return locations, nil
}

// References requests all references to the symbol at the position,
// including its declaration.
func (g *gateway) References(ctx context.Context, path string, line, character uint32) ([]protocol.Location, error) {
	server, err := g.currentServer()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	locations, err := server.References(ctx, &protocol.ReferenceParams{
		TextDocumentPositionParams: textDocumentPosition(path, line, character),
		Context: protocol.ReferenceContext{
			IncludeDeclaration: true,
		},
	})
	if err != nil {
		return nil, g.wrapCallError(protocol.MethodTextDocumentReferences, err)
	}
	return locations, nil
}

// Shutdown runs the LSP shutdown/exit sequence and drops the connection.
func (g *gateway) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	server := g.server
	conn := g.conn
	g.server = nil
	g.conn = nil
	g.openedFiles = make(map[string]*fileState)
	g.mu.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs error
	if err := server.Shutdown(ctx); err != nil {
		g.logger.Warnw("analyzer shutdown request failed", "error", err)
		errs = multierr.Append(errs, fmt.Errorf("shutdown request: %w", err))
	}
	if err := server.Exit(ctx); err != nil {
		g.logger.Warnw("analyzer exit notification failed", "error", err)
		errs = multierr.Append(errs, fmt.Errorf("exit notification: %w", err))
	}
	return multierr.Append(errs, conn.Close())
}

func (g *gateway) currentServer() (protocol.Server, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.server == nil {
		return nil, &errors.UnreachableError{Socket: g.socket, Err: errors.New("not connected")}
	}
	return g.server, nil
}

// wrapCallError classifies a failed outbound request into the service's
// failure taxonomy.
func (g *gateway) wrapCallError(method string, err error) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return &errors.TimeoutError{Method: method, Timeout: g.requestTimeout}
	case isResponseError(err):
		return &errors.BackingFailureError{Method: method, Err: err}
	default:
		return &errors.UnreachableError{Socket: g.socket, Err: err}
	}
}

func isResponseError(err error) bool {
	var respErr *jsonrpc2.Error
	return stderrors.As(err, &respErr)
}

func textDocumentPosition(path string, line, character uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri.File(path)},
		Position:     protocol.Position{Line: line, Character: character},
	}
}

// detectLanguageID maps a file extension to an LSP language identifier,
// falling back to plaintext.
func detectLanguageID(path string) protocol.LanguageIdentifier {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "rs":
		return protocol.RustLanguage
	case "toml":
		return "toml"
	case "json":
		return protocol.JSONLanguage
	case "yaml", "yml":
		return protocol.YamlLanguage
	case "md", "markdown":
		return protocol.MarkdownLanguage
	case "py":
		return protocol.PythonLanguage
	case "js":
		return protocol.JavaScriptLanguage
	case "ts":
		return protocol.TypeScriptLanguage
	case "jsx":
		return protocol.JavaScriptReactLanguage
	case "tsx":
		return protocol.TypeScriptReactLanguage
	case "c":
		return protocol.CLanguage
	case "cpp", "cc", "cxx", "h", "hpp":
		return protocol.CppLanguage
	case "go":
		return protocol.GoLanguage
	case "rb":
		return protocol.RubyLanguage
	case "sh", "bash", "zsh":
		return protocol.ShellscriptLanguage
	case "css":
		return protocol.CSSLanguage
	case "html", "htm":
		return protocol.HTMLLanguage
	case "xml":
		return protocol.XMLLanguage
	case "sql":
		return protocol.SQLLanguage
	default:
		return "plaintext"
	}
}
