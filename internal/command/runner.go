// Package command abstracts running external tools so build stages can be
// exercised without git or typst installed.
package command

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound indicates the requested executable was not found on PATH.
var ErrNotFound = errors.New("executable not found")

// Command describes a single external invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the outcome of a command that was started.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool { return r.ExitCode == 0 }

// Runner runs external commands and waits for them to finish.
//
// Contract:
//
//	A non-nil error means the process could not be started (or was killed by
//	ctx); Result is then zero-valued apart from ExitCode -1.
//	A process that ran and exited non-zero returns a nil error and the exit
//	status in Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}
