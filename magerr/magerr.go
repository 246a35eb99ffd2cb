// Package magerr defines the failure taxonomy used across the physical
// model stack. The core never logs (spec §7); every failure is returned
// as a structured *Error so the caller can recover from it programmatically.
package magerr

import "fmt"

// Kind classifies a failure without resorting to sentinel error values
// scattered across packages.
type Kind int

const (
	_ Kind = iota
	MissingData
	InvalidInput
	CalculationNaNResult
	CoreNotProcessed
	GapInvalidDimensions
	ModelNotAvailable
	MaterialDataMissing
)

func (k Kind) String() string {
	switch k {
	case MissingData:
		return "MISSING_DATA"
	case InvalidInput:
		return "INVALID_INPUT"
	case CalculationNaNResult:
		return "CALCULATION_NAN_RESULT"
	case CoreNotProcessed:
		return "CORE_NOT_PROCESSED"
	case GapInvalidDimensions:
		return "GAP_INVALID_DIMENSIONS"
	case ModelNotAvailable:
		return "MODEL_NOT_AVAILABLE"
	case MaterialDataMissing:
		return "MATERIAL_DATA_MISSING"
	default:
		return "UNKNOWN"
	}
}

// Error is the structured {code, message, context} failure shape from
// spec §7. Context carries whatever identifies the offending entity
// (material name, gap index, ...) without forcing a single field shape.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an *Error with no context.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an *Error, preserving errors.Is/As chains.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// With attaches context key/value pairs and returns the same *Error for
// chaining at the call site: `return nil, magerr.New(...).With("material", name)`.
func (e *Error) With(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Is reports whether target is an *Error with the same Kind, so callers
// can do `errors.Is(err, magerr.New(magerr.InvalidInput, ""))`-style checks
// via errors.Is(err, magerr.KindError(magerr.InvalidInput)).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// KindError returns a bare *Error usable only as an errors.Is target.
func KindError(kind Kind) *Error { return &Error{Kind: kind} }
