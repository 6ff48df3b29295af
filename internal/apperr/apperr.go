// Package apperr classifies pipeline failures so callers can tell a corrupt
// video from an unreachable API without parsing messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure class of an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindMediaDecode
	KindExternalService
	KindFilesystem
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindMediaDecode:
		return "media decode"
	case KindExternalService:
		return "external service"
	case KindFilesystem:
		return "filesystem"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrMediaDecode     = &Error{Kind: KindMediaDecode}
	ErrExternalService = &Error{Kind: KindExternalService}
	ErrFilesystem      = &Error{Kind: KindFilesystem}
	ErrConfiguration   = &Error{Kind: KindConfiguration}
)

// Error is a classified failure of operation Op.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return e.Op + ": " + e.Kind.String() + " error"
	default:
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func MediaDecode(op string, err error) error {
	return &Error{Kind: KindMediaDecode, Op: op, Err: err}
}

func ExternalService(op string, err error) error {
	return &Error{Kind: KindExternalService, Op: op, Err: err}
}

func Filesystem(op string, err error) error {
	return &Error{Kind: KindFilesystem, Op: op, Err: err}
}

func Configuration(op string, err error) error {
	return &Error{Kind: KindConfiguration, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps err to the process exit status used by the CLI.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindConfiguration:
		return 2
	case KindMediaDecode:
		return 3
	case KindExternalService:
		return 4
	case KindFilesystem:
		return 5
	default:
		return 1
	}
}
