package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"binding-generator/internal/common"
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrStructural = errors.New("structural error")
	ErrValue      = errors.New("value error")
)

// Kind classifies a registry error.
type Kind int

const (
	KindStructural Kind = iota
	KindValue
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindValue:
		return "value"
	default:
		return common.UnknownStr
	}
}

// Codes identifying the specific check that failed.
const (
	CodeXMLParse         = "xml-parse"
	CodeNoRoot           = "no-root"
	CodeMissingAttribute = "missing-attribute"
	CodeMissingElement   = "missing-element"
	CodeDuplicateElement = "duplicate-element"
	CodeUnexpectedTag    = "unexpected-tag"
	CodeUnknownType      = "unknown-type"
	CodeUnknownApi       = "unknown-api"
	CodeUnknownProfile   = "unknown-profile"
	CodeInvalidNumber    = "invalid-number"
)

// Error is a single fatal problem found in a registry document.
type Error struct {
	// Kind of the error.
	Kind Kind
	// Code identifies which check failed.
	Code string
	// Path is the slash separated element path, e.g. "registry/feature/require".
	Path string
	// Message is the human-readable description.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Structural returns a structural error at path.
func Structural(code, path, format string, args ...any) *Error {
	return &Error{Kind: KindStructural, Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Value returns a value error at path.
func Value(code, path, format string, args ...any) *Error {
	return &Error{Kind: KindValue, Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to the error and returns it.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// Error formats the error as "[code] path: message: cause".
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString("[" + e.Code + "] ")

	if e.Path != "" {
		sb.WriteString(e.Path + ": ")
	}

	sb.WriteString(e.Message)

	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrStructural:
		return e.Kind == KindStructural
	case ErrValue:
		return e.Kind == KindValue
	default:
		return false
	}
}
