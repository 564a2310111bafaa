package modreg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a machine-readable classification of a registry error.
type ErrorCode string

const (
	// CodeInvalidArgument is a malformed Define call.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// CodeDuplicateDefinition is a Define for a name that is already registered.
	CodeDuplicateDefinition ErrorCode = "DUPLICATE_DEFINITION"
	// CodeUndefinedDependency is a resolution that reached a name with no definition.
	CodeUndefinedDependency ErrorCode = "UNDEFINED_DEPENDENCY"
	// CodeCircularDependency is a resolution path that revisited a name already on it.
	CodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// CodeConstructorFailed is a constructor that returned an error, panicked or
	// could not accept the instances of its dependencies.
	CodeConstructorFailed ErrorCode = "CONSTRUCTOR_FAILED"
)

// Sentinels for use with errors.Is. They match any *Error with the same code.
var (
	ErrInvalidArgument     = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrDuplicateDefinition = &Error{Code: CodeDuplicateDefinition, Message: "duplicate definition"}
	ErrUndefinedDependency = &Error{Code: CodeUndefinedDependency, Message: "undefined dependency"}
	ErrCircularDependency  = &Error{Code: CodeCircularDependency, Message: "circular dependency"}
	ErrConstructorFailed   = &Error{Code: CodeConstructorFailed, Message: "constructor failed"}
)

// Error is the single error type returned by a Registry.
type Error struct {
	Code    ErrorCode
	Message string
	// ID is the offending component name, if any.
	ID string
	// Path is the active resolution path for circular dependencies, not
	// including the repeated ID.
	Path        []string
	SourceError error
}

func (e *Error) Error() string {
	if e.SourceError == nil {
		return fmt.Sprintf("[modreg-%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[modreg-%s] %s (%v)", e.Code, e.Message, e.SourceError)
}

func (e *Error) Unwrap() error {
	return e.SourceError
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func invalidArgument(id, format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
		ID:      id,
	}
}

func duplicateDefinition(id string) *Error {
	return &Error{
		Code:    CodeDuplicateDefinition,
		Message: fmt.Sprintf("id already defined %q", id),
		ID:      id,
	}
}

func undefinedDependency(id string) *Error {
	return &Error{
		Code:    CodeUndefinedDependency,
		Message: fmt.Sprintf("id not defined %q", id),
		ID:      id,
	}
}

func circularDependency(path resolutionPath, id string) *Error {
	return &Error{
		Code:    CodeCircularDependency,
		Message: fmt.Sprintf("circular dependencies: %s & %s", strings.Join(path, ", "), id),
		ID:      id,
		Path:    append([]string(nil), path...),
	}
}

func constructorFailed(id string, cause error) *Error {
	return &Error{
		Code:        CodeConstructorFailed,
		Message:     fmt.Sprintf("constructor for %q failed", id),
		ID:          id,
		SourceError: cause,
	}
}
