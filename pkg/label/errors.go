package label

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two user-visible failure modes. Everything
// else is substituted with a default and logged.
var (
	// ErrNoTemplateTable means the base template contained zero tables,
	// so there is nothing to expand.
	ErrNoTemplateTable = errors.New("base template contains no tables")

	// ErrNoRenderableChunks means the record set produced zero chunks.
	ErrNoRenderableChunks = errors.New("record set yielded no renderable chunks")
)

// TemplateError reports a problem with a base template.
type TemplateError struct {
	Orientation Orientation
	Message     string
	Cause       error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error (%s): %s: %v", e.Orientation, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error (%s): %s", e.Orientation, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// NewTemplateError creates a TemplateError for the given orientation.
func NewTemplateError(o Orientation, message string, cause error) error {
	return &TemplateError{Orientation: o, Message: message, Cause: cause}
}

// DocumentError reports a failure during document package operations.
type DocumentError struct {
	Operation string
	Part      string
	Cause     error
}

func (e *DocumentError) Error() string {
	switch {
	case e.Part != "" && e.Cause != nil:
		return fmt.Sprintf("document error during %s of %q: %v", e.Operation, e.Part, e.Cause)
	case e.Part != "":
		return fmt.Sprintf("document error during %s of %q", e.Operation, e.Part)
	case e.Cause != nil:
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a DocumentError.
func NewDocumentError(operation, part string, cause error) error {
	return &DocumentError{Operation: operation, Part: part, Cause: cause}
}

// ContextError adds operation context to an existing error.
type ContextError struct {
	Operation string
	Cause     error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithOperation wraps err with the operation that produced it. Nil
// errors pass through.
func WithOperation(err error, operation string) error {
	if err == nil {
		return nil
	}
	return &ContextError{Operation: operation, Cause: err}
}

// IsTemplateError reports whether err is (or wraps) a TemplateError.
func IsTemplateError(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}

// IsDocumentError reports whether err is (or wraps) a DocumentError.
func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}
