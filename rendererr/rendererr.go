// Package rendererr types the error/warning taxonomy of spec §7: malformed
// input, resource resolution failure, degenerate layout, pagination
// overflow, and internal invariant violation. A render either fails
// outright (malformed input, internal invariant violation) or succeeds with
// an accumulated warning list (resource resolution failure, degenerate
// layout, pagination overflow) — errors are never swallowed silently.
package rendererr

import (
	"errors"
	"fmt"
)

// Kind identifies which of the five error kinds a Warning or fatal Error
// represents.
type Kind int

const (
	// KindMalformedInput: missing required fields, unknown enum values,
	// out-of-range colors. Always fatal.
	KindMalformedInput Kind = iota
	// KindResourceResolution: an image/svg src failed to resolve. Always a
	// warning; the box renders as an empty placeholder.
	KindResourceResolution
	// KindDegenerateLayout: zero or negative container dimensions. Always a
	// warning; the container emits no children.
	KindDegenerateLayout
	// KindPaginationOverflow: an unsplittable box taller than a page.
	// Always a warning; the box is clipped.
	KindPaginationOverflow
	// KindInternalInvariant: a programmer error. Always fatal.
	KindInternalInvariant
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed_input"
	case KindResourceResolution:
		return "resource_resolution"
	case KindDegenerateLayout:
		return "degenerate_layout"
	case KindPaginationOverflow:
		return "pagination_overflow"
	case KindInternalInvariant:
		return "internal_invariant"
	default:
		return "unknown"
	}
}

// Fatal reports whether this kind always aborts the render.
func (k Kind) Fatal() bool { return k == KindMalformedInput || k == KindInternalInvariant }

// Error is a structured, fatal render error identifying the offending node
// path (e.g. "root.children[2].children[0]").
type Error struct {
	Kind    Kind
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Message)
}

// New builds a fatal Error.
func New(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal diagnostic accumulated onto a Result.
type Warning struct {
	Kind    Kind
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s at %s: %s", w.Kind, w.Path, w.Message)
}

// Err adapts w to an error so it can be folded into a multierr-accumulated
// warning list (spec §7: "a single result object containing ... an
// accumulated warning list").
func (w Warning) Err() error { return errors.New(w.String()) }

// Warn builds a Warning.
func Warn(kind Kind, path, format string, args ...any) Warning {
	return Warning{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}
