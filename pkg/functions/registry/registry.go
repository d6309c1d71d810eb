// Package registry holds named resolver functions the host registers for
// function-type resolver specs.
package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Function computes a value from substituted args and the current
// resolution context.
type Function func(ctx context.Context, args map[string]any, rctx models.Context) (any, error)

// Registry is an explicit, constructed function registry. It is safe for
// concurrent use; registration normally happens once at startup.
type Registry struct {
	functions map[string]Function
	mu        sync.RWMutex
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		functions: make(map[string]Function),
	}
}

// Register adds a named function. Duplicate names are rejected so two
// packages cannot silently shadow each other.
func (r *Registry) Register(name string, fn Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.functions[name]; exists {
		return errors.NewResolverErrorf("function %q is already registered", name)
	}

	r.functions[name] = fn
	return nil
}

// Call dispatches to a registered function by name.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any, rctx models.Context) (any, error) {
	r.mu.RLock()
	fn, ok := r.functions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NewResolverErrorf("function %q is not registered", name).AddType(string(models.ResolverTypeFunction))
	}

	return fn(ctx, args, rctx)
}

// Names returns the registered function names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := ectolinq.Keys(r.functions)
	sort.Strings(names)
	return names
}
