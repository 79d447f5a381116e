// Package errors provides structured error handling for the Tide engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a programmer configuration error, such as a route
	// constructed without a page builder. Config errors are raised as panics.
	KindConfig
	// KindProtocol indicates misuse of a lifecycle protocol by an external
	// caller, such as pushing the same route twice without an intervening pop.
	// Protocol errors are raised as panics.
	KindProtocol
	// KindLoad indicates a component load failure.
	KindLoad
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindProtocol:
		return "protocol"
	case KindLoad:
		return "load"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TideError represents a structured error in the Tide engine.
type TideError struct {
	// Op is the operation that failed (e.g., "navigation.PageRoute.DidPush").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TideError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TideError) Unwrap() error {
	return e.Err
}

// New constructs a TideError with the current timestamp.
func New(op string, kind ErrorKind, err error) *TideError {
	return &TideError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// Configf builds a configuration error. Callers panic with the result:
// a missing builder or an invalid construction parameter is a programming
// mistake, never a recoverable runtime condition.
func Configf(op, format string, args ...any) *TideError {
	return New(op, KindConfig, fmt.Errorf(format, args...))
}

// Protocolf builds a protocol-violation error. Callers panic with the
// result: lifecycle methods invoked out of order indicate a bug in the
// caller, not a runtime condition to recover from.
func Protocolf(op, format string, args ...any) *TideError {
	return New(op, KindProtocol, fmt.Errorf(format, args...))
}

// Loadf builds a load error for reporting via the active Handler.
func Loadf(op, format string, args ...any) *TideError {
	return New(op, KindLoad, fmt.Errorf(format, args...))
}
