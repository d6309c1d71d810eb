package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/extract"
	"github.com/Ramsey-B/fern/pkg/httpclient"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/template"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// DefaultTimeoutMs is the per-request timeout when the spec does not set one.
const DefaultTimeoutMs = 10000

// defaultErrorMessage is shown when no better message can be derived.
const defaultErrorMessage = "Failed to fetch data"

// HTTPHandler resolves http-type resolver specs.
type HTTPHandler struct {
	client    *httpclient.Client
	extractor *extract.Extractor
	logger    ectologger.Logger
}

// NewHTTPHandler creates a new http resolver handler
func NewHTTPHandler(client *httpclient.Client, extractor *extract.Extractor, logger ectologger.Logger) *HTTPHandler {
	return &HTTPHandler{
		client:    client,
		extractor: extractor,
		logger:    logger,
	}
}

// Resolve substitutes placeholders into the request description, issues the
// request, extracts the configured response path and normalizes the result
// for selection-style controls.
//
// All transport and status failures come back as *errors.ResolverError with
// a user-facing message; extraction failures on the success path propagate
// unchanged since they indicate a misconfigured spec.
func (h *HTTPHandler) Resolve(ctx context.Context, spec *models.ResolverSpec, rctx models.Context) (any, error) {
	timeout := time.Duration(DefaultTimeoutMs) * time.Millisecond
	if spec.TimeoutMs > 0 {
		timeout = time.Duration(spec.TimeoutMs) * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := h.buildRequest(ctx, spec, rctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(ctx, req)
	if err != nil {
		// Transport failure: no status, no body to extract from.
		h.logger.WithContext(ctx).WithError(err).Errorf("http resolver request failed: %s", req.URL.String())
		if spec.ErrorMessage != "" {
			return nil, errors.NewResolverError(spec.ErrorMessage).AddType(string(spec.Type))
		}
		return nil, errors.NewResolverError(defaultErrorMessage).AddType(string(spec.Type))
	}

	if err := httpclient.ParseResponse(resp); err != nil {
		h.logger.WithContext(ctx).WithError(err).Errorf("http resolver could not parse response from %s", req.URL.String())
		resp.BodyJSON = nil
	}

	if !httpclient.IsSuccessStatus(resp.StatusCode) {
		return nil, h.failureError(ctx, spec, resp)
	}

	result := resp.BodyJSON
	if spec.ResponsePath != "" {
		result, err = h.extractor.Extract(spec.ResponsePath, resp.BodyJSON)
		if err != nil {
			return nil, err
		}
	}

	return normalizeOptions(result), nil
}

// buildRequest builds the outbound request from the spec, with placeholders
// substituted into url, headers, params and body independently.
func (h *HTTPHandler) buildRequest(ctx context.Context, spec *models.ResolverSpec, rctx models.Context) (*http.Request, error) {
	method := strings.ToUpper(spec.Method)
	if method == "" {
		method = http.MethodGet
	}

	reqURL, err := buildURL(spec.URL, spec.Params, rctx)
	if err != nil {
		return nil, errors.NewResolverErrorf("invalid resolver url: %v", err).AddType(string(spec.Type))
	}

	var bodyReader io.Reader
	if method != http.MethodGet && spec.Body != nil {
		bodyBytes, err := buildBody(spec.Body, rctx)
		if err != nil {
			return nil, errors.NewResolverErrorf("invalid resolver body: %v", err).AddType(string(spec.Type))
		}
		if len(bodyBytes) > httpclient.MaxRequestSize {
			return nil, errors.NewResolverErrorf("request body too large: %d bytes (max %d)", len(bodyBytes), httpclient.MaxRequestSize).AddType(string(spec.Type))
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, errors.NewResolverErrorf("failed to create request: %v", err).AddType(string(spec.Type))
	}

	// Default content type first so explicit headers win on conflict.
	req.Header.Set("Content-Type", "application/json")
	for key, value := range template.SubstituteStringMap(spec.Headers, rctx) {
		req.Header.Set(key, value)
	}

	return req, nil
}

func buildURL(urlTemplate string, params map[string]string, rctx models.Context) (string, error) {
	resolved := template.SubstituteString(urlTemplate, rctx)

	parsed, err := url.Parse(resolved)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", resolved, err)
	}

	if len(params) > 0 {
		query := parsed.Query()
		for key, value := range template.SubstituteStringMap(params, rctx) {
			query.Set(key, value)
		}
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

func buildBody(body any, rctx models.Context) ([]byte, error) {
	// A string body is treated as a raw template, anything else is
	// substituted structurally and marshaled.
	if s, ok := body.(string); ok {
		return []byte(template.SubstituteString(s, rctx)), nil
	}
	return json.Marshal(template.Substitute(body, rctx))
}

// failureError derives the user-facing message for a failed response.
// Precedence: error_path extraction (best-effort, silently skipped on any
// failure), then the spec's error_message, then the status line, then a
// generic default.
func (h *HTTPHandler) failureError(ctx context.Context, spec *models.ResolverSpec, resp *httpclient.Response) error {
	if spec.ErrorPath != "" && resp.BodyJSON != nil {
		if message, ok := h.extractErrorMessage(ctx, spec.ErrorPath, resp.BodyJSON); ok {
			return errors.NewResolverError(message).AddType(string(spec.Type))
		}
	}

	if spec.ErrorMessage != "" {
		return errors.NewResolverError(spec.ErrorMessage).AddType(string(spec.Type))
	}

	if resp.StatusCode > 0 {
		return errors.NewResolverErrorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)).AddType(string(spec.Type))
	}

	return errors.NewResolverError(defaultErrorMessage).AddType(string(spec.Type))
}

// extractErrorMessage applies error_path to the error body. Collection
// results use their first element. Failures are swallowed here so the
// caller can fall through to the next message rule.
func (h *HTTPHandler) extractErrorMessage(ctx context.Context, path string, body any) (string, bool) {
	value, err := h.extractor.Extract(path, body)
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).Debugf("error_path %q did not apply to error body", path)
		return "", false
	}

	if seq, ok := value.([]any); ok {
		if len(seq) == 0 {
			return "", false
		}
		value = seq[0]
	}
	if value == nil {
		return "", false
	}

	return utils.Stringify(value), true
}

// normalizeOptions shapes an array result for selection controls: bare
// strings become {value, label} records, everything else passes through.
func normalizeOptions(result any) any {
	seq, ok := result.([]any)
	if !ok {
		return result
	}

	normalized := make([]any, len(seq))
	for i, item := range seq {
		if s, ok := item.(string); ok {
			normalized[i] = models.NewOption(s, s)
		} else {
			normalized[i] = item
		}
	}
	return normalized
}
