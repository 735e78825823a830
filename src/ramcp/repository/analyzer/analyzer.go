// Package analyzer keeps the registry of backing analyzer references.
package analyzer

import (
	"context"
	"sync"

	"github.com/lspmux/ramcp/src/ramcp/entity"
	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/mapper"
	"github.com/lspmux/ramcp/src/ramcp/model"
	tally "github.com/uber-go/tally/v4"
)

// Repository stores one analyzer reference per workspace root. Registration is
// write-once: after a workspace resolves to an analyzer, later registrations
// for the same root return the existing reference untouched.
type Repository interface {
	Get(ctx context.Context, workspaceRoot string) (*entity.Analyzer, error)
	Register(ctx context.Context, a *entity.Analyzer) (*entity.Analyzer, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	mu       sync.Mutex
	memstore map[string]*model.Analyzer
	stats    tally.Scope
}

// New returns a repository to a key-value Analyzer data store keyed by
// canonical workspace root.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[string]*model.Analyzer),
		stats:    stats,
	}
}

// Get returns the Analyzer registered for the given workspace root.
func (r *repository) Get(ctx context.Context, workspaceRoot string) (*entity.Analyzer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.memstore[workspaceRoot]
	if !ok {
		return nil, &errors.AnalyzerNotFoundError{WorkspaceRoot: workspaceRoot}
	}
	return mapper.ModelToAnalyzer(a)
}

// Register stores the Analyzer for its workspace root and returns the stored
// reference. An already registered root wins over the argument.
func (r *repository) Register(ctx context.Context, a *entity.Analyzer) (*entity.Analyzer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a == nil {
		return nil, errors.New("can't register nil analyzer")
	}
	if existing, ok := r.memstore[a.WorkspaceRoot]; ok {
		return mapper.ModelToAnalyzer(existing)
	}

	r.memstore[a.WorkspaceRoot] = mapper.AnalyzerToModel(a)
	r.stats.Counter("analyzers_registered").Inc(1)
	return mapper.ModelToAnalyzer(r.memstore[a.WorkspaceRoot])
}

// Count returns the total count of registered analyzers.
func (r *repository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.memstore), nil
}
