package intel

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/lspmux/ramcp/src/ramcp/entity"
	"github.com/lspmux/ramcp/src/ramcp/gateway/analyzer-client/analyzerclientmock"
	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs/fsmock"
	"github.com/lspmux/ramcp/src/ramcp/repository/analyzer"
	"github.com/lspmux/ramcp/src/ramcp/repository/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _filePath = "/workspace/src/main.rs"

type testMocks struct {
	gateway   *analyzerclientmock.MockGateway
	fs        *fsmock.MockRamcpFS
	sessions  session.Repository
	analyzers analyzer.Repository
}

func newTestController(t *testing.T) (Controller, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	scope := tally.NewTestScope("testing", make(map[string]string, 0))
	m := &testMocks{
		gateway:   analyzerclientmock.NewMockGateway(ctrl),
		fs:        fsmock.NewMockRamcpFS(ctrl),
		sessions:  session.New(scope),
		analyzers: analyzer.New(scope),
	}
	c := New(Params{
		Sessions:  m.sessions,
		Analyzers: m.analyzers,
		Gateway:   m.gateway,
		FS:        m.fs,
		Logger:    zap.NewNop().Sugar(),
		Stats:     scope,
	})
	return c, m
}

func fileArgs(t *testing.T, path string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"file_path": path})
	require.NoError(t, err)
	return raw
}

func positionArgs(t *testing.T, path string, line, character uint32) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"file_path": path,
		"line":      line,
		"character": character,
	})
	require.NoError(t, err)
	return raw
}

func TestTools(t *testing.T) {
	c, _ := newTestController(t)

	tools := c.Tools(context.Background())
	require.Len(t, tools, 4)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
		assert.True(t, json.Valid(tool.InputSchema), tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
	}
	assert.Equal(t, []string{ToolDiagnostics, ToolHover, ToolGotoDefinition, ToolFindReferences}, names)
}

func TestCallToolUnknownName(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.CallTool(context.Background(), &entity.CallToolParams{Name: "rust_rename"})
	require.Error(t, err)
	var invalid *errors.InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "unknown tool: rust_rename", invalid.Reason)
}

func TestCallToolRelativePath(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.CallTool(context.Background(), &entity.CallToolParams{
		Name:      ToolDiagnostics,
		Arguments: fileArgs(t, "src/main.rs"),
	})
	require.Error(t, err)
	var invalid *errors.InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "file_path must be absolute, got: src/main.rs", invalid.Reason)
}

func TestCallToolFileNotFound(t *testing.T) {
	c, m := newTestController(t)
	m.fs.EXPECT().FileExists(_filePath).Return(false, nil)

	_, err := c.CallTool(context.Background(), &entity.CallToolParams{
		Name:      ToolHover,
		Arguments: positionArgs(t, _filePath, 0, 0),
	})
	require.Error(t, err)
	var invalid *errors.InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "file not found: /workspace/src/main.rs", invalid.Reason)
}

func TestCallToolMalformedArguments(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.CallTool(context.Background(), &entity.CallToolParams{
		Name:      ToolDiagnostics,
		Arguments: json.RawMessage(`{"file_path": 5}`),
	})
	require.Error(t, err)
	var invalid *errors.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
}

func TestDiagnostics(t *testing.T) {
	ctx := context.Background()

	t.Run("renders one line per diagnostic", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().Diagnostics(ctx, _filePath).Return([]protocol.Diagnostic{
			{
				Range:    protocol.Range{Start: protocol.Position{Line: 2, Character: 4}},
				Severity: protocol.DiagnosticSeverityError,
				Message:  "cannot find value `x` in this scope",
			},
		}, nil)

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolDiagnostics,
			Arguments: fileArgs(t, _filePath),
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "3:5: [ERROR] cannot find value `x` in this scope", result.Content[0].Text)
	})

	t.Run("clean file", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().Diagnostics(ctx, _filePath).Return(nil, nil)

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolDiagnostics,
			Arguments: fileArgs(t, _filePath),
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "No diagnostics found.", result.Content[0].Text)
	})

	t.Run("request failure carries the retry note", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().Diagnostics(ctx, _filePath).
			Return(nil, &errors.TimeoutError{Method: "textDocument/diagnostic"})

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolDiagnostics,
			Arguments: fileArgs(t, _filePath),
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "Diagnostics request failed:")
		assert.Contains(t, result.Content[0].Text, "rust-analyzer may still be loading")
	})
}

func TestHover(t *testing.T) {
	ctx := context.Background()

	t.Run("returns hover markup", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().Hover(ctx, _filePath, uint32(10), uint32(4)).Return(&protocol.Hover{
			Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: "```rust\nfn main()\n```"},
		}, nil)

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolHover,
			Arguments: positionArgs(t, _filePath, 10, 4),
		})
		require.NoError(t, err)
		assert.Equal(t, "```rust\nfn main()\n```", result.Content[0].Text)
	})

	t.Run("no hover at position", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().Hover(ctx, _filePath, uint32(0), uint32(0)).Return(nil, nil)

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolHover,
			Arguments: positionArgs(t, _filePath, 0, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "No hover information available at this position.", result.Content[0].Text)
	})

	t.Run("request failure", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().Hover(ctx, _filePath, uint32(0), uint32(0)).
			Return(nil, &errors.BackingFailureError{Method: "textDocument/hover", Err: errors.New("content modified")})

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolHover,
			Arguments: positionArgs(t, _filePath, 0, 0),
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "Hover request failed:")
	})
}

func TestDefinitionAndReferences(t *testing.T) {
	ctx := context.Background()
	location := protocol.Location{
		URI:   uri.File("/workspace/src/lib.rs"),
		Range: protocol.Range{Start: protocol.Position{Line: 4, Character: 7}},
	}

	t.Run("definition renders locations", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().Definition(ctx, _filePath, uint32(2), uint32(8)).
			Return([]protocol.Location{location}, nil)

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolGotoDefinition,
			Arguments: positionArgs(t, _filePath, 2, 8),
		})
		require.NoError(t, err)
		assert.Equal(t, "/workspace/src/lib.rs:5:8", result.Content[0].Text)
	})

	t.Run("references render a count header", func(t *testing.T) {
		c, m := newTestController(t)
		m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
		m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).Return(nil)
		m.gateway.EXPECT().References(ctx, _filePath, uint32(2), uint32(8)).
			Return([]protocol.Location{location}, nil)

		result, err := c.CallTool(ctx, &entity.CallToolParams{
			Name:      ToolFindReferences,
			Arguments: positionArgs(t, _filePath, 2, 8),
		})
		require.NoError(t, err)
		assert.Equal(t, "Found 1 reference(s):\n/workspace/src/lib.rs:5:8", result.Content[0].Text)
	})
}

func TestFailedToOpenFile(t *testing.T) {
	ctx := context.Background()
	c, m := newTestController(t)
	m.fs.EXPECT().FileExists(_filePath).Return(true, nil)
	m.gateway.EXPECT().EnsureFileOpen(ctx, _filePath).
		Return(&errors.UnreachableError{Socket: "/tmp/lspmux.sock", Err: errors.New("not connected")})

	result, err := c.CallTool(ctx, &entity.CallToolParams{
		Name:      ToolDiagnostics,
		Arguments: fileArgs(t, _filePath),
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "Failed to open file:")
}

func TestAnalyzerNotReadyForSession(t *testing.T) {
	c, m := newTestController(t)

	id := uuid.Must(uuid.NewV4())
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
	require.NoError(t, m.sessions.Set(ctx, &entity.Session{
		UUID:          id,
		WorkspaceRoot: "/workspace",
	}))

	m.fs.EXPECT().FileExists(_filePath).Return(true, nil)

	result, err := c.CallTool(ctx, &entity.CallToolParams{
		Name:      ToolDiagnostics,
		Arguments: fileArgs(t, _filePath),
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "rust-analyzer is not ready:")
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
