package model

import (
	"path/filepath"
	"strings"
)

// Format is an image file format the renderer can produce.
type Format string

const (
	// FormatPNG is the raster format.
	FormatPNG Format = "png"

	// FormatSVG is the vector format.
	FormatSVG Format = "svg"
)

// String returns the lower-case format name.
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat converts an explicit format name such as "PNG" or "svg" to a
// Format. Anything else fails with an UnsupportedFormatError.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", &UnsupportedFormatError{Name: name}
	}
}

// FormatForPath picks a format from the file extension of path. Unknown
// extensions fall back to PNG; recognized is false in that case so callers
// can warn about it.
func FormatForPath(path string) (format Format, recognized bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case FormatPNG.Extension():
		return FormatPNG, true
	case FormatSVG.Extension():
		return FormatSVG, true
	default:
		return FormatPNG, false
	}
}

// RenderTarget says where a Symbol is drawn. Exactly one of
// TerminalTarget, RasterFileTarget or VectorFileTarget is used per run.
type RenderTarget interface {
	renderTarget()
}

// TerminalTarget draws the symbol as text on the primary output stream.
type TerminalTarget struct {
	// Invert swaps which modules are drawn filled.
	Invert bool

	// Colored wraps every line in ANSI color escapes.
	Colored bool
}

// RasterFileTarget writes a PNG image to Path.
type RasterFileTarget struct {
	Path string
}

// VectorFileTarget writes an SVG image to Path.
type VectorFileTarget struct {
	Path string
}

func (TerminalTarget) renderTarget()   {}
func (RasterFileTarget) renderTarget() {}
func (VectorFileTarget) renderTarget() {}

// TargetForPath returns the file target matching the extension of path.
// See FormatForPath for the meaning of recognized.
func TargetForPath(path string) (target RenderTarget, recognized bool) {
	format, recognized := FormatForPath(path)
	if format == FormatSVG {
		return VectorFileTarget{Path: path}, recognized
	}
	return RasterFileTarget{Path: path}, recognized
}
