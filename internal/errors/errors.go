// =============================================================================
// XML to CSV Converter - Error Taxonomy
// =============================================================================
//
// Every failure the converter can report is an *AppError carrying a Kind.
// The command layer turns these into a single human-readable console message.
//
// KINDS:
//   NOT_FOUND : the input path does not resolve to an existing file
//   PARSE     : the input is not well-formed XML
//   WRITE     : the output file cannot be created or written
//   CONFIG    : the configuration file cannot be read or is invalid
//   VALIDATION: the computed table breaks its own invariants
//
// An empty record set is NOT an error; see converter.Result.Warning.
//
// =============================================================================

package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindParse      Kind = "PARSE"
	KindWrite      Kind = "WRITE"
	KindConfig     Kind = "CONFIG"
	KindValidation Kind = "VALIDATION"
)

// Sentinels for errors.Is. An *AppError matches the sentinel of its Kind.
var (
	ErrNotFound   = stderrors.New("input file not found")
	ErrParse      = stderrors.New("malformed XML")
	ErrWrite      = stderrors.New("output not writable")
	ErrConfig     = stderrors.New("invalid configuration")
	ErrValidation = stderrors.New("invalid table")
)

var sentinels = map[Kind]error{
	KindNotFound:   ErrNotFound,
	KindParse:      ErrParse,
	KindWrite:      ErrWrite,
	KindConfig:     ErrConfig,
	KindValidation: ErrValidation,
}

// AppError is an application error with a kind, a message, an optional
// underlying cause and a bag of context values (usually the path involved).
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's kind.
func (e *AppError) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// WithContext attaches a context value and returns the same error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates an AppError of the given kind.
func New(kind Kind, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError reports a missing input file.
func NewNotFoundError(path string, cause error) *AppError {
	return New(KindNotFound, fmt.Sprintf("file not found at path: %s", path), cause).
		WithContext("path", path)
}

// NewParseError reports an input that could not be parsed as XML.
func NewParseError(path string, cause error) *AppError {
	return New(KindParse, fmt.Sprintf("could not parse XML file %s, check its format", path), cause).
		WithContext("path", path)
}

// NewWriteError reports an output file that could not be created or written.
func NewWriteError(path string, cause error) *AppError {
	return New(KindWrite, fmt.Sprintf("error writing file %s", path), cause).
		WithContext("path", path)
}

// NewConfigError reports a configuration problem.
func NewConfigError(message string, cause error) *AppError {
	return New(KindConfig, message, cause)
}

// NewValidationError reports a broken table invariant.
func NewValidationError(message string) *AppError {
	return New(KindValidation, message, nil)
}

// KindOf returns the Kind of the first AppError in err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
