// Package errors defines the error taxonomy for dynamic field resolution.
package errors

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
)

// ResolverError is a user/config-facing resolution failure. The message is
// meant to be shown to the person editing the field, so Error returns it
// verbatim with no decoration.
type ResolverError struct {
	Message      string
	ResolverType string
	FieldID      string
}

func NewResolverError(msg string) *ResolverError {
	return &ResolverError{Message: msg}
}

// NewResolverErrorf creates a new ResolverError with a formatted message
func NewResolverErrorf(format string, args ...any) *ResolverError {
	return &ResolverError{Message: fmt.Sprintf(format, args...)}
}

func (e *ResolverError) Error() string {
	return e.Message
}

func (e *ResolverError) AddType(resolverType string) *ResolverError {
	e.ResolverType = resolverType
	return e
}

func (e *ResolverError) AddField(fieldID string) *ResolverError {
	e.FieldID = fieldID
	return e
}

func (e *ResolverError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusUnprocessableEntity, e.Message).
		AddMetaValue("resolver_type", e.ResolverType).
		AddMetaValue("field_id", e.FieldID)
}

func IsResolverError(err error) bool {
	_, ok := err.(*ResolverError)
	return ok
}

// PathExtractionError is raised when a path expression cannot be compiled or
// applied to a document. It carries the original path for debugging.
type PathExtractionError struct {
	Path    string
	Message string
	cause   error
}

func NewPathExtractionError(path string, message string, cause error) *PathExtractionError {
	return &PathExtractionError{Path: path, Message: message, cause: cause}
}

func (e *PathExtractionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("path %q: %s: %v", e.Path, e.Message, e.cause)
	}
	return fmt.Sprintf("path %q: %s", e.Path, e.Message)
}

func (e *PathExtractionError) Unwrap() error {
	return e.cause
}

func (e *PathExtractionError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusBadRequest, e.Error()).
		AddMetaValue("path", e.Path)
}

func IsPathExtractionError(err error) bool {
	_, ok := err.(*PathExtractionError)
	return ok
}
