// Package models defines the declarative resolver specification format.
//
// # Overview
//
// A ResolverSpec describes how a dynamic form field obtains its value: a
// static option list, an HTTP call plus an extraction path, a conditional
// branch on another field's current value, or a named host-registered
// function. Specs are ordinary JSON-serializable configuration stored
// alongside each field definition; the engine never mutates them.
//
// # Example: HTTP resolver with templating
//
//	{
//	  "type": "http",
//	  "url": "/api/users/{team_id}/members",
//	  "response_path": "data[*].name",
//	  "depends_on": ["team_id"],
//	  "cache_ttl": 300
//	}
//
// # Example: conditional resolver
//
//	{
//	  "type": "conditional",
//	  "field_id": "country",
//	  "cases": {
//	    "us": {"type": "static", "options": [{"value": "ny", "label": "New York"}]}
//	  },
//	  "default_resolver": {"type": "static", "options": []}
//	}
package models

import (
	"github.com/Ramsey-B/fern/pkg/errors"
)

// ResolverType discriminates the resolver spec variants.
type ResolverType string

const (
	// ResolverTypeStatic returns a fixed option list.
	ResolverTypeStatic ResolverType = "static"

	// ResolverTypeHTTP fetches options from an HTTP endpoint.
	ResolverTypeHTTP ResolverType = "http"

	// ResolverTypeConditional selects a nested resolver by the current
	// value of another field.
	ResolverTypeConditional ResolverType = "conditional"

	// ResolverTypeFunction dispatches to a named registered function.
	ResolverTypeFunction ResolverType = "function"
)

// Option is a single selectable entry. It stays an open map so that extra
// keys beyond value/label round-trip untouched.
type Option map[string]any

// NewOption builds a {value, label} option record.
func NewOption(value string, label string) Option {
	return Option{"value": value, "label": label}
}

// MaxNestingDepth bounds conditional resolver recursion.
const MaxNestingDepth = 5

// ResolverSpec is the declarative description of how to compute a field's
// value. Type determines which variant fields are meaningful; fields from
// other variants are ignored.
type ResolverSpec struct {
	Type ResolverType `json:"type" validate:"required"`

	// Common metadata. DependsOn and CacheTTL are contracts for the host
	// caching/invalidation layer; the engine itself never reads them.
	DependsOn    []string `json:"depends_on,omitempty"`
	CacheTTL     int      `json:"cache_ttl,omitempty" validate:"omitempty,gt=0"` // seconds
	TimeoutMs    int      `json:"timeout,omitempty" validate:"omitempty,gt=0"`   // milliseconds, http only
	ErrorMessage string   `json:"error_message,omitempty"`
	Debug        bool     `json:"debug,omitempty"`

	// Static resolver
	Options []Option `json:"options,omitempty"`

	// HTTP resolver
	URL          string            `json:"url,omitempty"`     // templated: "/api/users/{team_id}"
	Method       string            `json:"method,omitempty"`  // GET, POST, PUT, DELETE, PATCH. Defaults to GET
	Headers      map[string]string `json:"headers,omitempty"` // static and templated headers
	Params       map[string]string `json:"params,omitempty"`  // query parameters
	Body         any               `json:"body,omitempty"`    // attached only for non-GET methods
	ResponsePath string            `json:"response_path,omitempty"`
	ErrorPath    string            `json:"error_path,omitempty"`

	// Conditional resolver
	FieldID         string                   `json:"field_id,omitempty"`
	Cases           map[string]*ResolverSpec `json:"cases,omitempty"`
	DefaultResolver *ResolverSpec            `json:"default_resolver,omitempty"`

	// Function resolver
	Name string         `json:"name,omitempty"`
	Args map[string]any `json:"args,omitempty"`
}

var allowedMethods = map[string]bool{
	"":       true, // defaults to GET
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
}

// Validate checks the structural invariants of the spec and its nested
// resolvers, including the nesting-depth bound. It performs no resolution.
func (s *ResolverSpec) Validate() error {
	return s.validate(0)
}

func (s *ResolverSpec) validate(depth int) error {
	if depth > MaxNestingDepth {
		return errors.NewResolverError("Resolver nesting too deep")
	}

	switch s.Type {
	case ResolverTypeStatic:
		if s.Options == nil {
			return errors.NewResolverError("static resolver requires options").AddType(string(s.Type))
		}
		return nil

	case ResolverTypeHTTP:
		if s.URL == "" {
			return errors.NewResolverError("http resolver requires a url").AddType(string(s.Type))
		}
		if !allowedMethods[s.Method] {
			return errors.NewResolverErrorf("http resolver method %q is not supported", s.Method).AddType(string(s.Type))
		}
		return nil

	case ResolverTypeConditional:
		if s.FieldID == "" {
			return errors.NewResolverError("conditional resolver requires a field_id").AddType(string(s.Type))
		}
		if len(s.Cases) == 0 && s.DefaultResolver == nil {
			return errors.NewResolverError("conditional resolver requires cases or a default_resolver").
				AddType(string(s.Type)).AddField(s.FieldID)
		}
		for _, nested := range s.Cases {
			if nested == nil {
				continue
			}
			if err := nested.validate(depth + 1); err != nil {
				return err
			}
		}
		if s.DefaultResolver != nil {
			return s.DefaultResolver.validate(depth + 1)
		}
		return nil

	case ResolverTypeFunction:
		if s.Name == "" {
			return errors.NewResolverError("function resolver requires a name").AddType(string(s.Type))
		}
		return nil

	default:
		return errors.NewResolverErrorf("Unsupported resolver type: %s", s.Type)
	}
}
