// Package model defines the domain types and value objects for the qr CLI.
//
// This package contains pure data structures with no external dependencies:
// the encoding request, the encoded symbol, render targets and file formats.
// Everything is constructed per invocation and treated as immutable.
//
// The package also defines exit codes (ExitCode), the typed errors the CLI
// maps to them (InputError, UnsupportedFormatError, ErrInterrupted) and the
// CLIError wrapper that carries an exit code to the top-level handler.
package model
