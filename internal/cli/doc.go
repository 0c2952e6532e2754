// Package cli implements the cobra-based command line interface of qr.
//
// There is a single root command, qr [text]. root.go defines it together
// with HandleError, the one place where every failure is mapped to a
// message and an exit code. generate.go holds the input → encode → render
// workflow and the human-readable diagnostics printed on stderr.
package cli
