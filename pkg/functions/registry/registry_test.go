package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

func TestRegisterAndCall(t *testing.T) {
	r := New()

	require.NoError(t, r.Register("echo", func(_ context.Context, args map[string]any, _ models.Context) (any, error) {
		return args["value"], nil
	}))

	result, err := r.Call(context.Background(), "echo", map[string]any{"value": "hi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", result)
}

func TestRegister_DuplicateRejected(t *testing.T) {
	r := New()
	fn := func(_ context.Context, _ map[string]any, _ models.Context) (any, error) { return nil, nil }

	require.NoError(t, r.Register("fn", fn))
	assert.Error(t, r.Register("fn", fn))
}

func TestCall_Unregistered(t *testing.T) {
	r := New()

	_, err := r.Call(context.Background(), "nope", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsResolverError(err))
	assert.Equal(t, `function "nope" is not registered`, err.Error())
}

func TestNames_Sorted(t *testing.T) {
	r := New()
	fn := func(_ context.Context, _ map[string]any, _ models.Context) (any, error) { return nil, nil }

	require.NoError(t, r.Register("b", fn))
	require.NoError(t, r.Register("a", fn))
	require.NoError(t, r.Register("c", fn))

	assert.Equal(t, []string{"a", "b", "c"}, r.Names())
}
