// Package jerrors implements the JSONiq core's error taxonomy. The
// janus-datalog reports every failure as a plain error built
// with fmt.Errorf("...: %w", err); this package keeps that texture —
// small constructors, %w-wrapping, errors.Is/As for taxonomy checks —
// while adding the typed categories JSONiq dynamic/type evaluation
// requires: TypeError, DynamicError, NonAtomicKey, UnexpectedType,
// InvalidArgument, FunctionNotFound, IteratorFlow, SchemaMismatch,
// Cancelled, NotRewindable.
package jerrors

import (
	"errors"
	"fmt"
)

// Category is the error taxonomy tag.
type Category string

const (
	TypeError        Category = "TypeError"
	DynamicError     Category = "DynamicError"
	NonAtomicKey     Category = "NonAtomicKey"
	UnexpectedType   Category = "UnexpectedType"
	InvalidArgument  Category = "InvalidArgument"
	FunctionNotFound Category = "FunctionNotFound"
	IteratorFlow     Category = "IteratorFlow"
	SchemaMismatch   Category = "SchemaMismatch"
	Cancelled        Category = "Cancelled"
	NotRewindable    Category = "NotRewindable"
)

// Position is the source metadata every surfaced error carries: file,
// line, column, and the offending expression's text fragment.
type Position struct {
	File     string
	Line     int
	Column   int
	Fragment string
}

func (p Position) String() string {
	if p.File == "" && p.Line == 0 && p.Column == 0 {
		if p.Fragment == "" {
			return ""
		}
		return fmt.Sprintf("(in %q)", p.Fragment)
	}
	if p.Fragment == "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d (in %q)", p.File, p.Line, p.Column, p.Fragment)
}

// Error is a JSONiq core error: a category, a message, an optional
// source position, and an optional wrapped cause.
type Error struct {
	Category Category
	Message  string
	Pos      Position
	Cause    error
}

func (e *Error) Error() string {
	pos := e.Pos.String()
	if pos != "" {
		pos = " " + pos
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s%s: %v", e.Category, e.Message, pos, e.Cause)
	}
	return fmt.Sprintf("%s: %s%s", e.Category, e.Message, pos)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is supports category checks with errors.Is: a target *Error with no
// Message and no Cause (e.g. &Error{Category: TypeError}) matches any
// *Error of that category; any other target *Error matches only when
// both category and message are equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" && t.Cause == nil {
		return e.Category == t.Category
	}
	return e.Category == t.Category && e.Message == t.Message
}

func newf(cat Category, pos Position, cause error, format string, args ...interface{}) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...), Pos: pos, Cause: cause}
}

func NewTypeError(pos Position, format string, args ...interface{}) *Error {
	return newf(TypeError, pos, nil, format, args...)
}

func NewDynamicError(pos Position, format string, args ...interface{}) *Error {
	return newf(DynamicError, pos, nil, format, args...)
}

func NewNonAtomicKey(pos Position, format string, args ...interface{}) *Error {
	return newf(NonAtomicKey, pos, nil, format, args...)
}

func NewUnexpectedType(pos Position, format string, args ...interface{}) *Error {
	return newf(UnexpectedType, pos, nil, format, args...)
}

func NewInvalidArgument(pos Position, format string, args ...interface{}) *Error {
	return newf(InvalidArgument, pos, nil, format, args...)
}

func NewFunctionNotFound(pos Position, format string, args ...interface{}) *Error {
	return newf(FunctionNotFound, pos, nil, format, args...)
}

// NewIteratorFlow reports internal misuse of the RuntimeIterator
// protocol (hasNext/next called out of order). This is a
// programmer error, not a user-facing one; callers may choose to
// panic on it instead of propagating, but a typed error is still
// offered for callers that prefer to recover at the query driver.
func NewIteratorFlow(format string, args ...interface{}) *Error {
	return newf(IteratorFlow, Position{}, nil, format, args...)
}

func NewSchemaMismatch(pos Position, format string, args ...interface{}) *Error {
	return newf(SchemaMismatch, pos, nil, format, args...)
}

func NewCancelled() *Error {
	return newf(Cancelled, Position{}, nil, "query cancelled")
}

func NewNotRewindable(format string, args ...interface{}) *Error {
	return newf(NotRewindable, Position{}, nil, format, args...)
}

// Wrap attaches a category and position to an underlying error,
// preserving it as the Cause for errors.Unwrap/errors.Is chains.
func Wrap(cat Category, pos Position, cause error, format string, args ...interface{}) *Error {
	return newf(cat, pos, cause, format, args...)
}

// Of reports the category of err if it is (or wraps) a *Error.
func Of(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}
	return "", false
}
