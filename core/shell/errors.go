package shell

import (
	"errors"
	"strings"
)

// ErrorMessage is the only diagnostic the interpreter prints. Detail is
// written to the application and event logs instead.
const ErrorMessage = "An error has occurred\n"

var (
	ErrCdUsage               = errors.New("cd: expected exactly one directory")
	ErrMissingRedirectTarget = errors.New("missing redirection target")
)

// Pipeline stages that can fail.
const (
	OpRead     = "read"
	OpRedirect = "redirect"
	OpLookup   = "lookup"
	OpSpawn    = "spawn"
	OpBuiltin  = "builtin"
	OpChdir    = "chdir"
	OpStartup  = "startup"
)

// OpError records a failure and the stage that produced it.
type OpError struct {
	Op      string
	Command []string
	Err     error
}

func (e *OpError) Error() string {
	if len(e.Command) > 0 {
		return e.Op + " " + strings.Join(e.Command, " ") + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}
