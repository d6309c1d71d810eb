package utils

import "fmt"

// Stringify converts a JSON-like value to its display string. Strings pass
// through untouched; nil maps to "null" so conditional case keys can match
// explicit null field values; everything else uses the default formatting
// (JSON numbers decoded as float64 print without a trailing ".0").
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
