package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	assert.Equal(t, "null", Stringify(nil))
	assert.Equal(t, "plain", Stringify("plain"))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "42", Stringify(float64(42)))
	assert.Equal(t, "4.2", Stringify(4.2))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "[a b]", Stringify([]string{"a", "b"}))
}
