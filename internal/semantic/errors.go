// Package semantic implements type evaluation, inference and validation for
// the pipeline language. Type expressions are ordinary expressions evaluated
// into type values; validation both checks a node against an expected type
// and fills unknown types in from it.
package semantic

import (
	"fmt"

	"github.com/leapstack-labs/prql/pkg/pl"
)

// Error is the base interface for all semantic errors.
type Error interface {
	error
	Span() *pl.Span
}

// baseError provides common error functionality.
type baseError struct {
	span *pl.Span
	msg  string
}

func (e *baseError) Span() *pl.Span { return e.span }

func (e *baseError) Error() string {
	if e.span != nil {
		return fmt.Sprintf("%s: %s", e.span, e.msg)
	}
	return e.msg
}

// TypeExpressionError reports an expression that cannot be evaluated as a
// type.
type TypeExpressionError struct {
	baseError
}

// NewTypeExpressionError creates a new type-expression error.
func NewTypeExpressionError(span *pl.Span, format string, args ...any) *TypeExpressionError {
	return &TypeExpressionError{baseError: baseError{span: span, msg: fmt.Sprintf(format, args...)}}
}

// StructuralError reports a shape violation inside a type expression, such
// as an array with the wrong number of elements.
type StructuralError struct {
	baseError
}

// NewStructuralError creates a new structural error.
func NewStructuralError(span *pl.Span, msg string) *StructuralError {
	return &StructuralError{baseError: baseError{span: span, msg: msg}}
}

// TypeMismatchError reports a node whose type is incompatible with the
// expected type. Expected and Found carry the tuple-aware renderings of both
// sides; Help is an optional contextual hint.
type TypeMismatchError struct {
	span     *pl.Span
	Who      string // caller label, empty when unknown
	Expected string
	Found    string
	Help     string
}

// Span returns the source span of the offending node.
func (e *TypeMismatchError) Span() *pl.Span { return e.span }

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("expected %s, but found %s", e.Expected, e.Found)
	if e.Who != "" {
		msg = fmt.Sprintf("%s expected %s, but found %s", e.Who, e.Expected, e.Found)
	}
	if e.span != nil {
		msg = fmt.Sprintf("%s: %s", e.span, msg)
	}
	if e.Help != "" {
		msg += "\nhelp: " + e.Help
	}
	return msg
}

// withSpan attaches a span to an error that does not carry one yet.
func withSpan(err error, span *pl.Span) error {
	if err == nil || span == nil {
		return err
	}
	switch e := err.(type) {
	case *TypeExpressionError:
		if e.span == nil {
			e.span = span
		}
	case *StructuralError:
		if e.span == nil {
			e.span = span
		}
	case *TypeMismatchError:
		if e.span == nil {
			e.span = span
		}
	}
	return err
}
