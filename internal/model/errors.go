package model

import (
	"errors"
	"fmt"
)

// Sentinel causes for InputError and the interrupt case. Use errors.Is to
// match them; InputError unwraps to its cause.
var (
	// ErrNoData means no text argument was given and standard input is an
	// interactive terminal.
	ErrNoData = errors.New("no data supplied (pass text as an argument or pipe it to stdin)")

	// ErrEmptyInput means standard input contained only whitespace.
	ErrEmptyInput = errors.New("empty input")

	// ErrInterrupted means the user sent an interrupt while the program was
	// waiting for standard input.
	ErrInterrupted = errors.New("aborted by user")
)

// InputError reports that no usable text could be obtained.
type InputError struct {
	Err error
}

// Error returns the underlying cause's message.
func (e *InputError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the cause (ErrNoData or ErrEmptyInput) to errors.Is.
func (e *InputError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned for an explicit format name the
// renderer cannot produce.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (supported: png, svg)", e.Name)
}

// ExitCode is the process exit status.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers every failure: input errors, unsupported
	// formats, usage mistakes, interrupts and unexpected errors.
	ExitGeneralError ExitCode = 1
)

// CLIError is an error that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message, followed by the underlying error if present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
