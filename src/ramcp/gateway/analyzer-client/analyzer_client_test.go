package analyzerclient

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs/fsmock"
	"github.com/lspmux/ramcp/src/ramcp/internal/jsonrpc2mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _defaultConfig = `
analyzer:
  socket: /tmp/lspmux.sock
  requestTimeoutSeconds: 30
  probeTimeoutMillis: 500
`

func newTestGateway(t *testing.T) *gateway {
	t.Helper()
	return &gateway{
		socket:         "/tmp/lspmux.sock",
		requestTimeout: time.Second,
		probeTimeout:   100 * time.Millisecond,
		openedFiles:    make(map[string]*fileState),
		dial:           dialUnix,
		fs:             fs.New(),
		logger:         zap.NewNop().Sugar(),
	}
}

// fakeServer records the subset of outbound requests the gateway sends.
type fakeServer struct {
	protocol.Server

	didOpen   []*protocol.DidOpenTextDocumentParams
	didChange []*protocol.DidChangeTextDocumentParams
	watched   []*protocol.DidChangeWatchedFilesParams
	hover     *protocol.Hover
	locations []protocol.Location
	err       error
	shutdowns int
	exits     int
}

func (f *fakeServer) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	f.didOpen = append(f.didOpen, params)
	return f.err
}

func (f *fakeServer) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	f.didChange = append(f.didChange, params)
	return f.err
}

func (f *fakeServer) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	f.watched = append(f.watched, params)
	return f.err
}

func (f *fakeServer) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return f.hover, f.err
}

func (f *fakeServer) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	return f.locations, f.err
}

func (f *fakeServer) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	return f.locations, f.err
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdowns++
	return nil
}

func (f *fakeServer) Exit(ctx context.Context) error {
	f.exits++
	return nil
}

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		provider, err := config.NewYAML(config.Static(map[string]interface{}{
			"analyzer": map[string]interface{}{
				"socket":                "/tmp/lspmux.sock",
				"requestTimeoutSeconds": 10,
				"probeTimeoutMillis":    250,
			},
		}))
		require.NoError(t, err)

		g, err := New(Params{
			Config:    provider,
			Lifecycle: fxtest.NewLifecycle(t),
			Logger:    zap.NewNop().Sugar(),
			FS:        fs.New(),
		})
		require.NoError(t, err)
		impl := g.(*gateway)
		assert.Equal(t, "/tmp/lspmux.sock", impl.socket)
		assert.Equal(t, 10*time.Second, impl.requestTimeout)
		assert.Equal(t, 250*time.Millisecond, impl.probeTimeout)
	})

	t.Run("missing socket", func(t *testing.T) {
		provider, err := config.NewYAML(config.Static(map[string]interface{}{
			"analyzer": map[string]interface{}{},
		}))
		require.NoError(t, err)

		_, err = New(Params{
			Config:    provider,
			Lifecycle: fxtest.NewLifecycle(t),
			Logger:    zap.NewNop().Sugar(),
			FS:        fs.New(),
		})
		assert.Error(t, err)
	})

	t.Run("defaults applied when timeouts omitted", func(t *testing.T) {
		provider, err := config.NewYAML(config.Static(map[string]interface{}{
			"analyzer": map[string]interface{}{
				"socket": "/tmp/lspmux.sock",
			},
		}))
		require.NoError(t, err)

		g, err := New(Params{
			Config:    provider,
			Lifecycle: fxtest.NewLifecycle(t),
			Logger:    zap.NewNop().Sugar(),
			FS:        fs.New(),
		})
		require.NoError(t, err)
		impl := g.(*gateway)
		assert.Equal(t, 30*time.Second, impl.requestTimeout)
		assert.Equal(t, 500*time.Millisecond, impl.probeTimeout)
	})
}

func TestProbe(t *testing.T) {
	t.Run("listener present", func(t *testing.T) {
		socket := filepath.Join(t.TempDir(), "lspmux.sock")
		ln, err := net.Listen("unix", socket)
		require.NoError(t, err)
		defer ln.Close()
		go func() {
			conn, err := ln.Accept()
			if err == nil {
				conn.Close()
			}
		}()

		g := newTestGateway(t)
		g.socket = socket
		assert.NoError(t, g.Probe(context.Background()))
	})

	t.Run("nothing listening", func(t *testing.T) {
		g := newTestGateway(t)
		g.socket = filepath.Join(t.TempDir(), "absent.sock")

		err := g.Probe(context.Background())
		require.Error(t, err)
		var unreachable *errors.UnreachableError
		require.ErrorAs(t, err, &unreachable)
		assert.Equal(t, g.socket, unreachable.Socket)
	})
}

func TestEnsureFileOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFS := fsmock.NewMockRamcpFS(ctrl)

	g := newTestGateway(t)
	g.fs = mockFS
	server := &fakeServer{}
	g.server = server

	path := "/workspace/src/main.rs"
	ctx := context.Background()

	// First access opens the document at version 0.
	mockFS.EXPECT().ReadFile(path).Return([]byte("fn main() {}"), nil)
	require.NoError(t, g.EnsureFileOpen(ctx, path))
	require.Len(t, server.didOpen, 1)
	assert.Equal(t, int32(0), server.didOpen[0].TextDocument.Version)
	assert.Equal(t, protocol.RustLanguage, server.didOpen[0].TextDocument.LanguageID)
	assert.Equal(t, "fn main() {}", server.didOpen[0].TextDocument.Text)

	// Unchanged content is not re-sent.
	mockFS.EXPECT().ReadFile(path).Return([]byte("fn main() {}"), nil)
	require.NoError(t, g.EnsureFileOpen(ctx, path))
	assert.Len(t, server.didOpen, 1)
	assert.Empty(t, server.didChange)

	// Changed content bumps the version and sends full text.
	mockFS.EXPECT().ReadFile(path).Return([]byte("fn main() { run(); }"), nil)
	require.NoError(t, g.EnsureFileOpen(ctx, path))
	require.Len(t, server.didChange, 1)
	assert.Equal(t, int32(1), server.didChange[0].TextDocument.Version)
	assert.Equal(t, "fn main() { run(); }", server.didChange[0].ContentChanges[0].Text)
}

func TestEnsureFileOpenNotConnected(t *testing.T) {
	g := newTestGateway(t)

	err := g.EnsureFileOpen(context.Background(), "/workspace/src/main.rs")
	require.Error(t, err)
	var unreachable *errors.UnreachableError
	assert.ErrorAs(t, err, &unreachable)
}

func TestDidChangeWatchedFiles(t *testing.T) {
	g := newTestGateway(t)
	server := &fakeServer{}
	g.server = server

	events := []protocol.FileEvent{
		{URI: "file:///workspace/Cargo.toml", Type: protocol.FileChangeTypeChanged},
	}
	require.NoError(t, g.DidChangeWatchedFiles(context.Background(), events))
	require.Len(t, server.watched, 1)
	assert.Equal(t, []*protocol.FileEvent{&events[0]}, server.watched[0].Changes)
}

func TestHover(t *testing.T) {
	g := newTestGateway(t)
	server := &fakeServer{
		hover: &protocol.Hover{
			Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: "fn main()"},
		},
	}
	g.server = server

	hover, err := g.Hover(context.Background(), "/workspace/src/main.rs", 0, 3)
	require.NoError(t, err)
	assert.Equal(t, "fn main()", hover.Contents.Value)
}

func TestDefinitionAndReferences(t *testing.T) {
	g := newTestGateway(t)
	server := &fakeServer{
		locations: []protocol.Location{
			{URI: "file:///workspace/src/lib.rs"},
		},
	}
	g.server = server

	defs, err := g.Definition(context.Background(), "/workspace/src/main.rs", 2, 7)
	require.NoError(t, err)
	assert.Len(t, defs, 1)

	refs, err := g.References(context.Background(), "/workspace/src/main.rs", 2, 7)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestRequestFailureClassification(t *testing.T) {
	g := newTestGateway(t)

	t.Run("deadline exceeded becomes timeout", func(t *testing.T) {
		err := g.wrapCallError(protocol.MethodTextDocumentHover, context.DeadlineExceeded)
		var timeout *errors.TimeoutError
		require.ErrorAs(t, err, &timeout)
		assert.Equal(t, protocol.MethodTextDocumentHover, timeout.Method)
		assert.Equal(t, g.requestTimeout, timeout.Timeout)
	})

	t.Run("response error becomes backing failure", func(t *testing.T) {
		respErr := jsonrpc2.NewError(jsonrpc2.InternalError, "content modified")
		err := g.wrapCallError(protocol.MethodTextDocumentHover, respErr)
		var backing *errors.BackingFailureError
		require.ErrorAs(t, err, &backing)
		assert.Equal(t, protocol.MethodTextDocumentHover, backing.Method)
	})

	t.Run("transport error becomes unreachable", func(t *testing.T) {
		err := g.wrapCallError(protocol.MethodTextDocumentHover, errors.New("broken pipe"))
		var unreachable *errors.UnreachableError
		require.ErrorAs(t, err, &unreachable)
	})
}

func TestShutdown(t *testing.T) {
	t.Run("never connected is a no-op", func(t *testing.T) {
		g := newTestGateway(t)
		assert.NoError(t, g.Shutdown(context.Background()))
	})

	t.Run("connected runs shutdown and exit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockConn := jsonrpc2mock.NewMockConn(ctrl)
		mockConn.EXPECT().Close().Return(nil)

		g := newTestGateway(t)
		server := &fakeServer{}
		g.server = server
		g.conn = mockConn
		g.openedFiles["/workspace/src/main.rs"] = &fileState{version: 3}

		require.NoError(t, g.Shutdown(context.Background()))
		assert.Equal(t, 1, server.shutdowns)
		assert.Equal(t, 1, server.exits)
		assert.Nil(t, g.server)
		assert.Empty(t, g.openedFiles)
	})
}

func TestDetectLanguageID(t *testing.T) {
	tests := map[string]protocol.LanguageIdentifier{
		"/w/src/main.rs":       protocol.RustLanguage,
		"/w/Cargo.toml":        "toml",
		"/w/Cargo.lock":        "plaintext",
		"/w/rust-project.json": protocol.JSONLanguage,
		"/w/ci.yml":            protocol.YamlLanguage,
		"/w/README.md":         protocol.MarkdownLanguage,
		"/w/tool.py":           protocol.PythonLanguage,
		"/w/app.tsx":           protocol.TypeScriptReactLanguage,
		"/w/ffi.hpp":           protocol.CppLanguage,
		"/w/build.sh":          protocol.ShellscriptLanguage,
		"/w/LICENSE":           "plaintext",
	}
	for path, want := range tests {
		assert.Equal(t, want, detectLanguageID(path), path)
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
