// Package logging configures the zerolog logger shared by every component.
//
// Log records always go to the diagnostic stream (stderr), never to stdout,
// so the rendered QR code can be piped cleanly. Nothing is written to disk.
package logging
