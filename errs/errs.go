/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package errs defines the tagged failure kinds the analyzer and class
// pool surface at their public boundaries (spec §7). Each kind is a
// sentinel that callers can match with errors.Is; the teacher's
// classloader.cfe built similar "Class Format Error: ..." strings by
// concatenation and lost the cause, so here every constructor wraps the
// sentinel with github.com/pkg/errors instead of discarding context.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the documented failure categories.
type Kind string

const (
	MalformedCode     Kind = "MalformedCode"
	UnsupportedOpcode Kind = "UnsupportedOpcode"
	UnknownOpcode     Kind = "UnknownOpcode"
	StackUnderflow    Kind = "StackUnderflow"
	WideMismatch      Kind = "WideMismatch"
	FallOffEnd        Kind = "FallOffEnd"
	AnalysisFailed    Kind = "AnalysisFailed"
	DuplicateClass    Kind = "DuplicateClass"
	UnknownClass      Kind = "UnknownClass"
)

// Error is the concrete error type returned for every Kind above. It
// carries the owning method/class name when known, for diagnostics.
type Error struct {
	Kind   Kind
	Method string // method or class name the failure occurred in, if known
	cause  error
}

func (e *Error) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Method, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the same Kind, satisfying errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an Error of the given kind, wrapping msg as the cause.
func New(kind Kind, method, msg string) *Error {
	return &Error{Kind: kind, Method: method, cause: errors.New(msg)}
}

// Newf is New with a format string.
func Newf(kind Kind, method, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Method: method, cause: errors.Errorf(format, args...)}
}

// Wrap attaches kind to an existing error, preserving it as the cause
// chain (errors.Unwrap/errors.Is both work through it).
func Wrap(kind Kind, method string, cause error) *Error {
	return &Error{Kind: kind, Method: method, cause: cause}
}

// Sentinel values usable with errors.Is(err, errs.MalformedCodeErr) etc.,
// for callers that only care about the kind and not the message.
var (
	MalformedCodeErr     = &Error{Kind: MalformedCode, cause: errors.New("malformed code")}
	UnsupportedOpcodeErr = &Error{Kind: UnsupportedOpcode, cause: errors.New("unsupported opcode")}
	UnknownOpcodeErr      = &Error{Kind: UnknownOpcode, cause: errors.New("unknown opcode")}
	StackUnderflowErr      = &Error{Kind: StackUnderflow, cause: errors.New("stack underflow")}
	WideMismatchErr        = &Error{Kind: WideMismatch, cause: errors.New("wide slot mismatch")}
	FallOffEndErr          = &Error{Kind: FallOffEnd, cause: errors.New("control fell off the end of the method")}
	AnalysisFailedErr      = &Error{Kind: AnalysisFailed, cause: errors.New("analysis failed")}
	DuplicateClassErr      = &Error{Kind: DuplicateClass, cause: errors.New("duplicate class")}
	UnknownClassErr        = &Error{Kind: UnknownClass, cause: errors.New("unknown class")}
)
