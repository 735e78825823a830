package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/lspmux/ramcp/src/ramcp/entity"
	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/model"
	"go.lsp.dev/jsonrpc2"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(f *entity.Session) *model.Session {
	m := &model.Session{
		UUID:          f.UUID,
		Conn:          f.Conn,
		WorkspaceRoot: f.WorkspaceRoot,
		Initialized:   f.Initialized,
	}
	if f.ClientInfo != nil {
		m.ClientName = f.ClientInfo.Name
		m.ClientVersion = f.ClientInfo.Version
	}
	return m
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(f *model.Session) (*entity.Session, error) {
	s := &entity.Session{
		UUID:          f.UUID,
		Conn:          f.Conn,
		WorkspaceRoot: f.WorkspaceRoot,
		Initialized:   f.Initialized,
	}
	if f.ClientName != "" || f.ClientVersion != "" {
		s.ClientInfo = &entity.ImplementationInfo{
			Name:    f.ClientName,
			Version: f.ClientVersion,
		}
	}
	return s, nil
}

// UUIDToSession initializes a new Session entity with the assigned uuid and connection.
func UUIDToSession(u uuid.UUID, c *jsonrpc2.Conn) *entity.Session {
	return &entity.Session{
		UUID: u,
		Conn: c,
	}
}

// AnalyzerToModel maps an Analyzer entity to its model equivalent.
func AnalyzerToModel(a *entity.Analyzer) *model.Analyzer {
	return &model.Analyzer{
		WorkspaceRoot: a.WorkspaceRoot,
		Socket:        a.Socket,
	}
}

// ModelToAnalyzer maps a model Analyzer to its entity equivalent.
func ModelToAnalyzer(a *model.Analyzer) (*entity.Analyzer, error) {
	return &entity.Analyzer{
		WorkspaceRoot: a.WorkspaceRoot,
		Socket:        a.Socket,
	}, nil
}

// ContextToSessionUUID extracts the UUID from a context
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}
