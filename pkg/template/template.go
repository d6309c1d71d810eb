// Package template substitutes {field_id} placeholders from a resolution
// context into arbitrary JSON-shaped values.
//
// A token is replaced only when the context contains the key and its value
// is non-nil; otherwise the token is preserved verbatim so unresolved
// placeholders stay visible while debugging a spec. Substitution is total:
// it never fails and never partially rewrites a token.
package template

import (
	"regexp"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// placeholderPattern matches {identifier} tokens. The identifier is one or
// more characters excluding the closing brace.
var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Substitute walks a JSON-shaped value, substituting placeholders in every
// string. Sequences keep order and length, mapping keys are never templated,
// and non-string scalars are returned unchanged.
func Substitute(value any, ctx models.Context) any {
	switch v := value.(type) {
	case string:
		return SubstituteString(v, ctx)

	case map[string]any:
		result := make(map[string]any, len(v))
		for key, item := range v {
			result[key] = Substitute(item, ctx)
		}
		return result

	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = Substitute(item, ctx)
		}
		return result

	default:
		return value
	}
}

// SubstituteString replaces every {identifier} token in s with the
// stringified context value for that identifier.
func SubstituteString(s string, ctx models.Context) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := match[1 : len(match)-1]
		value, ok := ctx[key]
		if !ok || value == nil {
			return match
		}
		return utils.Stringify(value)
	})
}

// SubstituteStringMap substitutes into every value of a string map (headers,
// query params). Keys are preserved unchanged. Nil input stays nil.
func SubstituteStringMap(m map[string]string, ctx models.Context) map[string]string {
	if m == nil {
		return nil
	}

	result := make(map[string]string, len(m))
	for key, value := range m {
		result[key] = SubstituteString(value, ctx)
	}
	return result
}

// SubstituteArgs substitutes into a function argument map, preserving
// non-string values.
func SubstituteArgs(args map[string]any, ctx models.Context) map[string]any {
	result := make(map[string]any, len(args))
	for key, value := range args {
		result[key] = Substitute(value, ctx)
	}
	return result
}

// HasPlaceholders checks if a string contains placeholder tokens.
func HasPlaceholders(s string) bool {
	return placeholderPattern.MatchString(s)
}
