// Package resolver resolves declarative resolver specs into concrete
// runtime values.
//
// # Overview
//
// The engine dispatches on the spec's type: static and conditional variants
// are handled inline, http and function variants are delegated to their
// handlers. Conditional specs may nest further resolver specs; recursion is
// bounded by models.MaxNestingDepth, with the depth counter passed by value
// down the call chain so concurrent resolutions never interfere.
//
// Every Resolve call is pure given its spec and context (plus network
// effects from http resolvers): the engine holds no state across calls and
// never mutates its inputs.
package resolver

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/functions/registry"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/template"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Engine dispatches resolver specs to their variant-specific strategies.
type Engine struct {
	http      *HTTPHandler
	functions *registry.Registry
	logger    ectologger.Logger
}

// NewEngine creates a new resolver engine
func NewEngine(httpHandler *HTTPHandler, functions *registry.Registry, logger ectologger.Logger) *Engine {
	return &Engine{
		http:      httpHandler,
		functions: functions,
		logger:    logger,
	}
}

// Resolve resolves a spec against the given context snapshot.
func (e *Engine) Resolve(ctx context.Context, spec *models.ResolverSpec, rctx models.Context) (any, error) {
	start := time.Now()

	result, err := e.resolve(ctx, spec, rctx, 0)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.ResolutionsTotal.WithLabelValues(string(spec.Type), status).Inc()
	metrics.ResolutionDuration.WithLabelValues(string(spec.Type)).Observe(time.Since(start).Seconds())

	if spec.Debug {
		e.logger.WithContext(ctx).WithFields(map[string]interface{}{
			"resolver_type": spec.Type,
			"duration":      time.Since(start),
			"status":        status,
		}).Debugf("Resolved %s resolver", spec.Type)
	}

	return result, err
}

func (e *Engine) resolve(ctx context.Context, spec *models.ResolverSpec, rctx models.Context, depth int) (any, error) {
	// The depth bound is checked before the type so a too-deep chain fails
	// the same way regardless of what it ends in.
	if depth > models.MaxNestingDepth {
		return nil, errors.NewResolverError("Resolver nesting too deep")
	}

	switch spec.Type {
	case models.ResolverTypeStatic:
		return spec.Options, nil

	case models.ResolverTypeHTTP:
		return e.http.Resolve(ctx, spec, rctx)

	case models.ResolverTypeFunction:
		args := template.SubstituteArgs(spec.Args, rctx)
		return e.functions.Call(ctx, spec.Name, args, rctx)

	case models.ResolverTypeConditional:
		next := selectCase(spec, rctx)
		if next == nil {
			return []any{}, nil
		}
		return e.resolve(ctx, next, rctx, depth+1)

	default:
		return nil, errors.NewResolverErrorf("Unsupported resolver type: %s", spec.Type)
	}
}

// selectCase picks the nested resolver for a conditional spec: the case
// keyed by the stringified current value of field_id, else the default.
func selectCase(spec *models.ResolverSpec, rctx models.Context) *models.ResolverSpec {
	if value, ok := rctx.Get(spec.FieldID); ok {
		if next, ok := spec.Cases[utils.Stringify(value)]; ok && next != nil {
			return next
		}
	}
	return spec.DefaultResolver
}
