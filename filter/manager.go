// Package filter selects download items with expr-lang expressions such as
//
//	isStatus("failed", "warning") or (Active and ETA > 3600)
//
// Filters can be registered under a name and looked up by it later.
package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/s0up4200/arrcore/domain"
)

// Manager holds named filters and applies them.
type Manager struct {
	compiler  Compiler
	evaluator Evaluator
	filters   map[string]CompiledFilter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator Evaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler:  NewExprCompiler(WithCache(10 * time.Minute)),
		evaluator: NewConcurrentEvaluator(),
		filters:   make(map[string]CompiledFilter),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterFilter registers a new filter or replaces an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	f, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = f
	m.mu.Unlock()
	return nil
}

// RegisterFilters registers all filters or none of them.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))
	for name, expression := range filters {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()
	return nil
}

func (m *Manager) UnregisterFilter(name string) {
	m.mu.Lock()
	delete(m.filters, name)
	m.mu.Unlock()
}

func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	f, ok := m.filters[name]
	m.mu.RUnlock()
	return f, ok
}

// ListFilters returns the registered names, sorted.
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the filter registered as nameOrExpression, or compiles
// it as an expression when no such name exists.
func (m *Manager) Resolve(nameOrExpression string) (CompiledFilter, error) {
	if f, ok := m.GetFilter(nameOrExpression); ok {
		return f, nil
	}
	return m.compiler.Compile(nameOrExpression)
}

// EvaluateFilter applies a registered filter.
func (m *Manager) EvaluateFilter(ctx context.Context, name string, items domain.DownloadItems) (domain.DownloadItems, error) {
	f, ok := m.GetFilter(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
	return m.evaluator.Evaluate(ctx, f, items)
}

// Apply resolves nameOrExpression and applies it. An empty string keeps
// every item.
func (m *Manager) Apply(ctx context.Context, nameOrExpression string, items domain.DownloadItems) (domain.DownloadItems, error) {
	if nameOrExpression == "" {
		return items, nil
	}
	f, err := m.Resolve(nameOrExpression)
	if err != nil {
		return nil, err
	}
	return m.evaluator.Evaluate(ctx, f, items)
}
