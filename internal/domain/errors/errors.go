package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// ErrNotFound marks a slug with no corresponding content unit, or a
// draft viewed through a public path. It is an absent result, never a
// crash for the surrounding listing.
var ErrNotFound = errors.New("not found")

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects per-field problems in a malformed content
// unit or form submission. Callers decide whether to skip or propagate.
type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// CompileError means a post body could not be turned into a renderable
// document. Fatal for that single detail render only.
type CompileError struct {
	Slug string
	Err  error
}

func (e CompileError) Error() string {
	if e.Slug == "" {
		return fmt.Sprintf("compile: %v", e.Err)
	}
	return fmt.Sprintf("compile %s: %v", e.Slug, e.Err)
}

func (e CompileError) Unwrap() error { return e.Err }

// UpstreamKind distinguishes failure modes of external collaborators
// for logging. Externally they are identical generic 500s.
type UpstreamKind string

const (
	UpstreamNotConfigured UpstreamKind = "not_configured"
	UpstreamRejected      UpstreamKind = "rejected"
)

// UpstreamError wraps a failure of an external service (email delivery,
// text generation). It never carries credential detail.
type UpstreamError struct {
	Service string
	Kind    UpstreamKind
	Err     error
}

func (e UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Service, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Kind, e.Err)
}

func (e UpstreamError) Unwrap() error { return e.Err }
