// Package extract selects sub-values from JSON documents via JMESPath.
package extract

import (
	"strings"
	"sync"

	"github.com/jmespath/go-jmespath"

	"github.com/Ramsey-B/fern/pkg/errors"
)

// Extractor compiles and applies path expressions, caching compiled
// expressions since specs re-resolve on every field edit.
type Extractor struct {
	cache map[string]*jmespath.JMESPath
	mu    sync.RWMutex
}

// New creates a new path extractor
func New() *Extractor {
	return &Extractor{
		cache: make(map[string]*jmespath.JMESPath),
	}
}

// Extract applies a path expression to a document and returns the selected
// value, or a slice of values for collection-producing paths (wildcards).
// A missing path yields nil without error; compile/apply failures return a
// *errors.PathExtractionError carrying the original path.
func (e *Extractor) Extract(path string, document any) (any, error) {
	compiled, err := e.getOrCompile(path)
	if err != nil {
		return nil, errors.NewPathExtractionError(path, "invalid path expression", err)
	}

	result, err := compiled.Search(document)
	if err != nil {
		return nil, errors.NewPathExtractionError(path, "failed to apply path", err)
	}

	return result, nil
}

// Validate checks that a path expression compiles.
func (e *Extractor) Validate(path string) error {
	if _, err := e.getOrCompile(path); err != nil {
		return errors.NewPathExtractionError(path, "invalid path expression", err)
	}
	return nil
}

// normalizePath tolerates JSONPath-style "$." / "$" prefixes carried over
// from specs authored against other extractors.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "$.") {
		return path[2:]
	}
	if path == "$" {
		return "@"
	}
	return path
}

func (e *Extractor) getOrCompile(path string) (*jmespath.JMESPath, error) {
	expression := normalizePath(path)

	e.mu.RLock()
	if compiled, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return compiled, nil
	}
	e.mu.RUnlock()

	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[expression] = compiled
	e.mu.Unlock()

	return compiled, nil
}

// ClearCache clears the compiled expression cache.
func (e *Extractor) ClearCache() {
	e.mu.Lock()
	e.cache = make(map[string]*jmespath.JMESPath)
	e.mu.Unlock()
}
