package handlers

import (
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/cache"
	appctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/extract"
	"github.com/Ramsey-B/fern/pkg/functions/registry"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/resolver"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// ResolveHandler serves the dynamic field resolution API
type ResolveHandler struct {
	engine    *resolver.Engine
	extractor *extract.Extractor
	functions *registry.Registry
	store     cache.Store
	emitter   *events.Emitter
	logger    ectologger.Logger
}

// NewResolveHandler creates a new resolve handler. store and emitter may be
// nil when caching/events are disabled.
func NewResolveHandler(
	engine *resolver.Engine,
	extractor *extract.Extractor,
	functions *registry.Registry,
	store cache.Store,
	emitter *events.Emitter,
	logger ectologger.Logger,
) *ResolveHandler {
	return &ResolveHandler{
		engine:    engine,
		extractor: extractor,
		functions: functions,
		store:     store,
		emitter:   emitter,
		logger:    logger,
	}
}

// RegisterRoutes registers the resolution routes
func (h *ResolveHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/resolve", h.Resolve)
	g.POST("/resolvers/validate", h.Validate)
	g.GET("/functions", h.Functions)
}

// ResolveRequest is the request body for resolving a spec
type ResolveRequest struct {
	Spec    *models.ResolverSpec `json:"spec" validate:"required"`
	Context models.Context       `json:"context"`
}

// ResolveResponse wraps a resolved value
type ResolveResponse struct {
	Result any  `json:"result"`
	Cached bool `json:"cached"`
}

// Resolve handles POST /resolve
func (h *ResolveHandler) Resolve(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "handlers.ResolveHandler.Resolve")
	defer span.End()

	req, err := utils.BindRequest[ResolveRequest](c)
	if err != nil {
		return err
	}

	rctx := req.Context
	if rctx == nil {
		rctx = models.Context{}
	}

	requestID := appctx.GetRequestID(ctx)
	start := time.Now()

	// cache_ttl is a host-layer contract; honor it here, outside the engine.
	cacheable := h.store != nil && req.Spec.CacheTTL > 0
	var key string
	if cacheable {
		key = cache.Key(req.Spec, rctx)
		if value, found, err := h.store.Get(ctx, key); err != nil {
			h.logger.WithContext(ctx).WithError(err).Errorf("resolution cache lookup failed")
		} else if found {
			metrics.CacheHits.Inc()
			h.emitter.EmitResolved(ctx, requestID, req.Spec, time.Since(start), true)
			return SuccessResponse(c, ResolveResponse{Result: value, Cached: true})
		} else {
			metrics.CacheMisses.Inc()
		}
	}

	result, err := h.engine.Resolve(ctx, req.Spec, rctx)
	if err != nil {
		h.emitter.EmitFailed(ctx, requestID, req.Spec, time.Since(start), err)
		return err
	}

	if cacheable {
		ttl := time.Duration(req.Spec.CacheTTL) * time.Second
		if err := h.store.Set(ctx, key, result, ttl); err != nil {
			h.logger.WithContext(ctx).WithError(err).Errorf("resolution cache store failed")
		}
	}

	h.emitter.EmitResolved(ctx, requestID, req.Spec, time.Since(start), false)
	return SuccessResponse(c, ResolveResponse{Result: result, Cached: false})
}

// ValidateRequest is the request body for validating a spec
type ValidateRequest struct {
	Spec *models.ResolverSpec `json:"spec" validate:"required"`
}

// ValidateResponse reports structural validation results
type ValidateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate handles POST /resolvers/validate: structural checks plus path
// expression compile checks, without resolving anything.
func (h *ResolveHandler) Validate(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "handlers.ResolveHandler.Validate")
	defer span.End()

	req, err := utils.BindRequest[ValidateRequest](c)
	if err != nil {
		return err
	}

	errs := []string{}
	if err := req.Spec.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	errs = append(errs, h.validatePaths(req.Spec)...)

	return SuccessResponse(c, ValidateResponse{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

// validatePaths compile-checks every path expression reachable from the
// spec, including nested conditional branches.
func (h *ResolveHandler) validatePaths(spec *models.ResolverSpec) []string {
	if spec == nil {
		return nil
	}

	errs := []string{}
	if spec.ResponsePath != "" {
		if err := h.extractor.Validate(spec.ResponsePath); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if spec.ErrorPath != "" {
		if err := h.extractor.Validate(spec.ErrorPath); err != nil {
			errs = append(errs, err.Error())
		}
	}
	for _, nested := range spec.Cases {
		errs = append(errs, h.validatePaths(nested)...)
	}
	errs = append(errs, h.validatePaths(spec.DefaultResolver)...)

	return errs
}

// FunctionsResponse lists registered resolver functions
type FunctionsResponse struct {
	Functions []string `json:"functions"`
}

// Functions handles GET /functions
func (h *ResolveHandler) Functions(c echo.Context) error {
	return SuccessResponse(c, FunctionsResponse{Functions: h.functions.Names()})
}
