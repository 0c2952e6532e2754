// Package input obtains the text to encode, either from an explicit
// command-line argument or by reading standard input until end-of-stream.
package input
