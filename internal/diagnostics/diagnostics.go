package diagnostics

import "fmt"

// Error codes, grouped by category. The numbering within a group is an
// implementation detail; the groups are stable and callers may switch on
// Category().
const (
	// 1xx: syntactic/structural, shapes parsing should have excluded.
	CodeMalformedValue = 100
	CodeInternal       = 101

	// 2xx: reference errors.
	CodeUnboundReference = 200
	CodeSelfLink         = 201
	CodeMainMissing      = 202
	CodeMainNotObject    = 203
	CodeLinkCycle        = 204

	// 3xx: type/operand errors.
	CodeSubtypeViolation = 300
	CodeIllFormedMap     = 301
	CodeNonBooleanLeft   = 310
	CodeNonBooleanRight  = 311
	CodeNonBooleanUnary  = 312
	CodeNotBasicLeft     = 320
	CodeNotBasicRight    = 321
	CodeNotBasicBoth     = 322
	CodeNonStringOperand = 330

	// 4xx: completeness errors.
	CodeUndetermined = 400
	CodeForwardType  = 401

	// 5xx: external-process errors.
	CodeSubstUnresolved = 500
	CodeSubstNotScalar  = 501
	CodeShellFailed     = 502
)

// Category names for the error taxonomy.
const (
	CategoryStructural   = "structural"
	CategoryReference    = "reference"
	CategoryType         = "type"
	CategoryCompleteness = "completeness"
	CategoryExternal     = "external"
)

// Error is the single error currency of the elaboration engine: a stable
// numeric code plus a human-readable message. Every failure is hard; the
// driver presents it and aborts.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("E%d: %s", e.Code, e.Message)
}

// Category maps the code to its taxonomy group.
func (e *Error) Category() string {
	switch {
	case e.Code < 200:
		return CategoryStructural
	case e.Code < 300:
		return CategoryReference
	case e.Code < 400:
		return CategoryType
	case e.Code < 500:
		return CategoryCompleteness
	default:
		return CategoryExternal
	}
}

func Errorf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the numeric code from an error, or -1 if it is not a
// diagnostics error.
func CodeOf(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return -1
}
