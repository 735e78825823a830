package jsonrpcfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/gofrs/uuid"
	"github.com/lspmux/ramcp/src/ramcp/internal/serverinfofile"
	"github.com/lspmux/ramcp/src/ramcp/internal/stdio"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyTransport = "mcp.transport"
	_configKeyAddress   = "mcp.address"
	_outputKeyTransport = "mcp-transport"
	_outputKeyAddress   = "mcp-address"

	// TransportStdio serves a single caller over stdin/stdout with
	// newline-delimited JSON framing.
	TransportStdio = "stdio"
	// TransportTCP serves concurrent callers over a TCP listener.
	TransportTCP = "tcp"
)

// Module is an fx module to handle JSON-RPC requests.
var Module = fx.Provide(New)

// JSONRPCModule represents a module to manage JSON-RPC requests.
type JSONRPCModule interface {
	OnStart(ctx context.Context) error
	ServeStream(ctx context.Context, conn jsonrpc2.Conn) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
}

// Router serves as the interface through which handling of requests will be implemented.
type Router interface {
	HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error
	UUID() uuid.UUID
}

// ConnectionManager will manage each active connection and its corresponding Router throughout the lifecycle of a connection.
type ConnectionManager interface {
	NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

type module struct {
	Transport string `json:"transport"`
	Address   string `json:"address"`

	connectionMgr  ConnectionManager
	ln             *net.TCPListener
	stdioStream    io.ReadWriteCloser
	logger         *zap.SugaredLogger
	serverInfoFile serverinfofile.ServerInfoFile
	shutdowner     fx.Shutdowner
}

// Params define values to be used by JsonRpcHandler.
type Params struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	ServerInfoFile serverinfofile.ServerInfoFile
	Shutdowner     fx.Shutdowner
}

// New creates a new server to handle JSON-RPC requests over the configured transport.
func New(p Params) (JSONRPCModule, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	m := module{
		logger:         p.Logger,
		serverInfoFile: p.ServerInfoFile,
		shutdowner:     p.Shutdowner,
	}

	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
	})

	return &m, nil
}

// OnStart will initialize a JSON-RPC handler and then begin handling incoming connections.
func (m *module) OnStart(ctx context.Context) error {
	switch m.Transport {
	case TransportStdio:
		if m.stdioStream == nil {
			m.stdioStream = stdio.New()
		}
		go m.startStdio()
		return nil
	case TransportTCP:
		if err := m.setup(); err != nil {
			return err
		}
		go m.start()
		return nil
	default:
		return fmt.Errorf("unsupported transport %q", m.Transport)
	}
}

// ServeStream is called when a new connection is initiated. Requests received via the connection will be routed to the handler, and answered via the connection's replier.
func (m *module) ServeStream(ctx context.Context, conn jsonrpc2.Conn) error {
	if m.connectionMgr == nil {
		m.logger.Errorf("cannot serve connection, no connection manager set")
		return errors.New("cannot serve connection, no connection manager set")
	}

	// Start handling the connection.
	handler, err := m.connectionMgr.NewConnection(ctx, &conn)
	if err != nil {
		return err
	}
	m.logger.Infow("client connected", zap.Stringer("uuid", handler.UUID()))
	conn.Go(ctx, handler.HandleReq)

	// Block indefinitely until connection closed.
	<-conn.Done()

	// Cleanup after connection.
	m.connectionMgr.RemoveConnection(ctx, handler.UUID())
	m.logger.Infow("client disconnected", zap.Stringer("uuid", handler.UUID()))

	return conn.Err()
}

// RegisterConnectionManager sets the connection manager, which keeps track of current active connections and provides a Router implementation.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}

// setup should be called after creation of a new handler to set initial values.
func (m *module) setup() error {
	if m.Address == "" {
		return errors.New("setup called before address is set")
	}

	addr, err := net.ResolveTCPAddr("tcp", m.Address)
	if err != nil {
		return err
	}

	m.ln, err = net.ListenTCP("tcp", addr)
	return err
}

// start will begin serving TCP connections, and panic on error.
func (m *module) start() {
	if err := m.serverInfoFile.UpdateField(_outputKeyTransport, TransportTCP); err != nil {
		panic(err)
	}
	if err := m.serverInfoFile.UpdateField(_outputKeyAddress, m.Address); err != nil {
		panic(err)
	}

	m.logger.Infow("started JSON-RPC inbound", zap.String("address", m.Address))
	if err := jsonrpc2.Serve(context.Background(), m.ln, m, 0); err != nil {
		panic(err)
	}
}

// startStdio serves the single stdio connection. Raw framing is used as the
// wire protocol is newline-delimited JSON without content-length headers.
// When the caller closes stdin the whole service shuts down.
func (m *module) startStdio() {
	if err := m.serverInfoFile.UpdateField(_outputKeyTransport, TransportStdio); err != nil {
		panic(err)
	}

	m.logger.Infow("started JSON-RPC inbound on stdio")
	conn := jsonrpc2.NewConn(jsonrpc2.NewRawStream(m.stdioStream))
	if err := m.ServeStream(context.Background(), conn); err != nil && !errors.Is(err, io.EOF) {
		m.logger.Errorw("stdio connection ended", zap.Error(err))
	}

	if err := m.shutdowner.Shutdown(); err != nil {
		m.logger.Errorw("shutdown failed", zap.Error(err))
	}
}

// processConfig will parse the configuration for any values required by this module.
func (m *module) processConfig(cfg config.Provider) error {
	if err := cfg.Get(_configKeyTransport).Populate(&m.Transport); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyTransport, err)
	}

	if m.Transport == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyTransport)
	}

	if err := cfg.Get(_configKeyAddress).Populate(&m.Address); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}

	if m.Transport == TransportTCP && m.Address == "" {
		return fmt.Errorf("missing field %q in config", _configKeyAddress)
	}

	return nil
}
