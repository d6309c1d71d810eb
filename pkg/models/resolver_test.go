package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Static(t *testing.T) {
	spec := &ResolverSpec{
		Type:    ResolverTypeStatic,
		Options: []Option{NewOption("a", "A")},
	}
	assert.NoError(t, spec.Validate())

	empty := &ResolverSpec{Type: ResolverTypeStatic, Options: []Option{}}
	assert.NoError(t, empty.Validate())

	missing := &ResolverSpec{Type: ResolverTypeStatic}
	assert.Error(t, missing.Validate())
}

func TestValidate_HTTP(t *testing.T) {
	spec := &ResolverSpec{Type: ResolverTypeHTTP, URL: "https://api.example.com/users"}
	assert.NoError(t, spec.Validate())

	spec.Method = "POST"
	assert.NoError(t, spec.Validate())

	spec.Method = "TRACE"
	assert.Error(t, spec.Validate())

	noURL := &ResolverSpec{Type: ResolverTypeHTTP}
	assert.Error(t, noURL.Validate())
}

func TestValidate_Conditional(t *testing.T) {
	spec := &ResolverSpec{
		Type:    ResolverTypeConditional,
		FieldID: "country",
		Cases: map[string]*ResolverSpec{
			"us": {Type: ResolverTypeStatic, Options: []Option{}},
		},
	}
	assert.NoError(t, spec.Validate())

	noField := &ResolverSpec{
		Type:  ResolverTypeConditional,
		Cases: map[string]*ResolverSpec{"us": {Type: ResolverTypeStatic, Options: []Option{}}},
	}
	assert.Error(t, noField.Validate())

	noBranches := &ResolverSpec{Type: ResolverTypeConditional, FieldID: "country"}
	assert.Error(t, noBranches.Validate())

	badNested := &ResolverSpec{
		Type:    ResolverTypeConditional,
		FieldID: "country",
		Cases: map[string]*ResolverSpec{
			"us": {Type: ResolverTypeHTTP}, // missing url
		},
	}
	assert.Error(t, badNested.Validate())
}

func TestValidate_Function(t *testing.T) {
	spec := &ResolverSpec{Type: ResolverTypeFunction, Name: "number_range"}
	assert.NoError(t, spec.Validate())

	unnamed := &ResolverSpec{Type: ResolverTypeFunction}
	assert.Error(t, unnamed.Validate())
}

func TestValidate_UnknownType(t *testing.T) {
	spec := &ResolverSpec{Type: "graphql"}
	err := spec.Validate()
	require.Error(t, err)
	assert.Equal(t, "Unsupported resolver type: graphql", err.Error())
}

func TestValidate_NestingDepth(t *testing.T) {
	build := func(levels int) *ResolverSpec {
		spec := &ResolverSpec{Type: ResolverTypeStatic, Options: []Option{}}
		for i := 0; i < levels; i++ {
			spec = &ResolverSpec{
				Type:            ResolverTypeConditional,
				FieldID:         "f",
				DefaultResolver: spec,
			}
		}
		return spec
	}

	assert.NoError(t, build(MaxNestingDepth).Validate())

	err := build(MaxNestingDepth + 1).Validate()
	require.Error(t, err)
	assert.Equal(t, "Resolver nesting too deep", err.Error())
}

func TestResolverSpec_JSONRoundTrip(t *testing.T) {
	raw := `{
		"type": "http",
		"url": "/api/users/{team_id}",
		"method": "POST",
		"headers": {"Authorization": "Bearer {token}"},
		"body": {"active": true},
		"response_path": "data[*].name",
		"error_path": "errors[0].message",
		"depends_on": ["team_id"],
		"cache_ttl": 300,
		"timeout": 5000
	}`

	var spec ResolverSpec
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))

	assert.Equal(t, ResolverTypeHTTP, spec.Type)
	assert.Equal(t, "/api/users/{team_id}", spec.URL)
	assert.Equal(t, "POST", spec.Method)
	assert.Equal(t, 300, spec.CacheTTL)
	assert.Equal(t, 5000, spec.TimeoutMs)
	assert.Equal(t, []string{"team_id"}, spec.DependsOn)
	assert.Equal(t, map[string]any{"active": true}, spec.Body)
}

func TestContext_Get(t *testing.T) {
	ctx := Context{"a": 1, "b": nil}

	v, ok := ctx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = ctx.Get("b")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = ctx.Get("missing")
	assert.False(t, ok)
}
