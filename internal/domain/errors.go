package domain

import (
	"context"
	"errors"
)

// Argument errors
var (
	ErrUnparseableURL   = errors.New("unparseable URL")
	ErrUnsupportedURL   = errors.New("unsupported URL")
	ErrMMSUNotSupported = errors.New("mmsu:// URL scheme not supported")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrMissingURL       = errors.New("url must be specified")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Fatal errors
var (
	ErrClobber    = errors.New("file exists and clobber not set")
	ErrConnection = errors.New("libmms connection error")
	ErrRead       = errors.New("read error")
	ErrWrite      = errors.New("write error")
	ErrConfig     = errors.New("invalid configuration")
)

// Exit codes returned by the command
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitFatal       = 2
	ExitInterrupted = 130
)

// UsageError reports invalid command line arguments
type UsageError struct {
	Diagnostics []string
}

func (e *UsageError) Error() string {
	if len(e.Diagnostics) == 0 {
		return ErrInvalidArgument.Error()
	}
	return e.Diagnostics[0]
}

func (e *UsageError) Unwrap() error {
	return ErrInvalidArgument
}

// ExitCode maps an error returned by a run to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument):
		return ExitUsage
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitFatal
	}
}
