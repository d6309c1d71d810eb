package resolver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/extract"
	"github.com/Ramsey-B/fern/pkg/httpclient"
	"github.com/Ramsey-B/fern/pkg/models"
)

func testHTTPHandler() *HTTPHandler {
	logger := testLogger()
	return NewHTTPHandler(httpclient.NewClient(httpclient.DefaultConfig(), logger), extract.New(), logger)
}

func jsonResponse(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestHTTPResolve_StringArrayNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, []string{"red", "green"})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{Type: models.ResolverTypeHTTP, URL: server.URL}

	result, err := h.Resolve(context.Background(), spec, models.Context{})
	require.NoError(t, err)

	expected := []any{
		models.NewOption("red", "red"),
		models.NewOption("green", "green"),
	}
	assert.Equal(t, expected, result)
}

func TestHTTPResolve_ObjectArrayPassesThrough(t *testing.T) {
	records := []map[string]any{
		{"value": "r", "label": "Red", "hex": "#f00"},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, records)
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{Type: models.ResolverTypeHTTP, URL: server.URL}

	result, err := h.Resolve(context.Background(), spec, models.Context{})
	require.NoError(t, err)

	options := result.([]any)
	require.Len(t, options, 1)
	assert.Equal(t, map[string]any{"value": "r", "label": "Red", "hex": "#f00"}, options[0])
}

func TestHTTPResolve_URLTemplating(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		jsonResponse(t, w, http.StatusOK, []any{})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type: models.ResolverTypeHTTP,
		URL:  server.URL + "/users/{id}/orders",
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{"id": float64(42)})
	require.NoError(t, err)
	assert.Equal(t, "/users/42/orders", gotPath)
}

func TestHTTPResolve_QueryParamsTemplated(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("team")
		jsonResponse(t, w, http.StatusOK, []any{})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:   models.ResolverTypeHTTP,
		URL:    server.URL + "/members",
		Params: map[string]string{"team": "{team_id}"},
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{"team_id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", gotQuery)
}

func TestHTTPResolve_PostBodyTemplated(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		jsonResponse(t, w, http.StatusOK, []any{})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:   models.ResolverTypeHTTP,
		URL:    server.URL,
		Method: "POST",
		Body:   map[string]any{"name": "{user}", "limit": float64(10)},
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{"user": "Al"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"name": "Al", "limit": float64(10)}, gotBody)
}

func TestHTTPResolve_GetNeverSendsBody(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		jsonResponse(t, w, http.StatusOK, []any{})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type: models.ResolverTypeHTTP,
		URL:  server.URL,
		Body: map[string]any{"ignored": true},
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{})
	require.NoError(t, err)
	assert.Empty(t, gotBody)
}

func TestHTTPResolve_ExplicitHeadersWin(t *testing.T) {
	var gotContentType, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		jsonResponse(t, w, http.StatusOK, []any{})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type: models.ResolverTypeHTTP,
		URL:  server.URL,
		Headers: map[string]string{
			"Content-Type":  "application/xml",
			"Authorization": "Bearer {token}",
		},
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{"token": "t-1"})
	require.NoError(t, err)
	assert.Equal(t, "application/xml", gotContentType)
	assert.Equal(t, "Bearer t-1", gotAuth)
}

func TestHTTPResolve_ResponsePathExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"items": []any{
					map[string]any{"name": "Ada"},
					map[string]any{"name": "Grace"},
				},
			},
		})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:         models.ResolverTypeHTTP,
		URL:          server.URL,
		ResponsePath: "data.items[*].name",
	}

	result, err := h.Resolve(context.Background(), spec, models.Context{})
	require.NoError(t, err)

	expected := []any{
		models.NewOption("Ada", "Ada"),
		models.NewOption("Grace", "Grace"),
	}
	assert.Equal(t, expected, result)
}

func TestHTTPResolve_InvalidResponsePathPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:         models.ResolverTypeHTTP,
		URL:          server.URL,
		ResponsePath: "data.[broken",
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{})
	require.Error(t, err)
	assert.True(t, errors.IsPathExtractionError(err))
}

func TestHTTPResolve_FailureStatusLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{Type: models.ResolverTypeHTTP, URL: server.URL}

	_, err := h.Resolve(context.Background(), spec, models.Context{})
	require.Error(t, err)
	assert.Equal(t, "HTTP 404: Not Found", err.Error())
	assert.True(t, errors.IsResolverError(err))
}

func TestHTTPResolve_FailureErrorMessageWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:         models.ResolverTypeHTTP,
		URL:          server.URL,
		ErrorMessage: "Could not load options",
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{})
	require.Error(t, err)
	assert.Equal(t, "Could not load options", err.Error())
}

func TestHTTPResolve_FailureErrorPathWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusBadRequest, map[string]any{
			"errors": []any{
				map[string]any{"message": "team not found"},
			},
		})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:         models.ResolverTypeHTTP,
		URL:          server.URL,
		ErrorPath:    "errors[*].message",
		ErrorMessage: "Could not load options",
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{})
	require.Error(t, err)
	assert.Equal(t, "team not found", err.Error())
}

func TestHTTPResolve_FailureErrorPathMissFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusBadRequest, map[string]any{"detail": "nope"})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:      models.ResolverTypeHTTP,
		URL:       server.URL,
		ErrorPath: "errors[0].message",
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{})
	require.Error(t, err)
	assert.Equal(t, "HTTP 400: Bad Request", err.Error())
}

func TestHTTPResolve_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:      models.ResolverTypeHTTP,
		URL:       server.URL,
		TimeoutMs: 50,
	}

	_, err := h.Resolve(context.Background(), spec, models.Context{})
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch data", err.Error())

	spec.ErrorMessage = "Upstream is down"
	_, err = h.Resolve(context.Background(), spec, models.Context{})
	require.Error(t, err)
	assert.Equal(t, "Upstream is down", err.Error())
}

func TestHTTPResolve_ScalarResultPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, map[string]any{"count": float64(12)})
	}))
	defer server.Close()

	h := testHTTPHandler()
	spec := &models.ResolverSpec{
		Type:         models.ResolverTypeHTTP,
		URL:          server.URL,
		ResponsePath: "count",
	}

	result, err := h.Resolve(context.Background(), spec, models.Context{})
	require.NoError(t, err)
	assert.Equal(t, float64(12), result)
}
