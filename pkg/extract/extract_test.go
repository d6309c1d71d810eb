package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/errors"
)

func testDocument() any {
	return map[string]any{
		"data": map[string]any{
			"users": []any{
				map[string]any{"name": "Ada", "id": float64(1)},
				map[string]any{"name": "Grace", "id": float64(2)},
			},
		},
		"total": float64(2),
	}
}

func TestExtract_DottedPath(t *testing.T) {
	e := New()

	result, err := e.Extract("data.users[0].name", testDocument())
	require.NoError(t, err)
	assert.Equal(t, "Ada", result)
}

func TestExtract_Wildcard(t *testing.T) {
	e := New()

	result, err := e.Extract("data.users[*].name", testDocument())
	require.NoError(t, err)
	assert.Equal(t, []any{"Ada", "Grace"}, result)
}

func TestExtract_DollarPrefixTolerated(t *testing.T) {
	e := New()

	result, err := e.Extract("$.total", testDocument())
	require.NoError(t, err)
	assert.Equal(t, float64(2), result)

	whole, err := e.Extract("$", testDocument())
	require.NoError(t, err)
	assert.Equal(t, testDocument(), whole)
}

func TestExtract_MissingPathYieldsNil(t *testing.T) {
	e := New()

	result, err := e.Extract("data.missing.deeper", testDocument())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExtract_InvalidExpression(t *testing.T) {
	e := New()

	_, err := e.Extract("data.[invalid", testDocument())
	require.Error(t, err)
	assert.True(t, errors.IsPathExtractionError(err))

	pathErr := err.(*errors.PathExtractionError)
	assert.Equal(t, "data.[invalid", pathErr.Path)
}

func TestValidate(t *testing.T) {
	e := New()

	assert.NoError(t, e.Validate("data.users[*].name"))
	assert.Error(t, e.Validate("data.[broken"))
}

func TestExtract_CacheReuse(t *testing.T) {
	e := New()

	for i := 0; i < 3; i++ {
		result, err := e.Extract("total", testDocument())
		require.NoError(t, err)
		assert.Equal(t, float64(2), result)
	}

	e.ClearCache()

	result, err := e.Extract("total", testDocument())
	require.NoError(t, err)
	assert.Equal(t, float64(2), result)
}
