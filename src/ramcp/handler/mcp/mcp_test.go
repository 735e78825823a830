package mcp

import (
	"context"
	"testing"

	"github.com/lspmux/ramcp/src/ramcp/controller/mcp/mcpmock"
	"github.com/lspmux/ramcp/src/ramcp/factory"
	"github.com/lspmux/ramcp/src/ramcp/internal/jsonrpcfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockController := mcpmock.NewMockController(ctrl)
	scope := tally.NewTestScope("testing", make(map[string]string, 0))

	t.Run("registers the connection manager", func(t *testing.T) {
		mockModule := jsonrpcfx.NewMockJSONRPCModule(ctrl)
		mockModule.EXPECT().RegisterConnectionManager(gomock.Any()).Return(nil)

		h, err := New(mockController, mockModule, scope)
		require.NoError(t, err)
		assert.NotNil(t, h.ConnectionManager())
	})

	t.Run("propagates registration failure", func(t *testing.T) {
		mockModule := jsonrpcfx.NewMockJSONRPCModule(ctrl)
		mockModule.EXPECT().RegisterConnectionManager(gomock.Any()).
			Return(assert.AnError)

		_, err := New(mockController, mockModule, scope)
		assert.Error(t, err)
	})
}

func TestConnectionManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockController := mcpmock.NewMockController(ctrl)
	scope := tally.NewTestScope("testing", make(map[string]string, 0))
	manager := &jsonRPCConnectionManager{ctrl: mockController, stats: scope}

	id := factory.UUID()

	t.Run("new connection creates a session-scoped router", func(t *testing.T) {
		mockController.EXPECT().InitSession(gomock.Any(), gomock.Any()).Return(id, nil)

		router, err := manager.NewConnection(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, id, router.UUID())
	})

	t.Run("failed session creation fails the connection", func(t *testing.T) {
		mockController.EXPECT().InitSession(gomock.Any(), gomock.Any()).
			Return(factory.UUID(), assert.AnError)

		_, err := manager.NewConnection(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("removal ends the session", func(t *testing.T) {
		mockController.EXPECT().EndSession(gomock.Any(), id).Return(nil)
		manager.RemoveConnection(context.Background(), id)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
