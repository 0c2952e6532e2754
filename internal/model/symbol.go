package model

import "fmt"

// Symbol is an encoded QR code: a square matrix of dark/light modules plus
// the metadata needed to draw it. The module matrix excludes the quiet zone;
// Dark handles the border so renderers can iterate over the full Dimension.
//
// A Symbol never shares its matrix with the caller that built it.
type Symbol struct {
	modules [][]bool
	version int
	level   ErrorLevel
	border  int
	boxSize int
}

// NewSymbol builds a Symbol from a square module matrix (true = dark).
// The matrix is copied.
func NewSymbol(modules [][]bool, version int, level ErrorLevel, border, boxSize int) (*Symbol, error) {
	size := len(modules)
	if size == 0 {
		return nil, fmt.Errorf("symbol: empty module matrix")
	}
	if border < 0 || border > MaxPixelSize {
		return nil, fmt.Errorf("symbol: border %d must be between 0 and %d", border, MaxPixelSize)
	}
	if boxSize < 1 || boxSize > MaxPixelSize {
		return nil, fmt.Errorf("symbol: box size %d must be between 1 and %d", boxSize, MaxPixelSize)
	}

	copied := make([][]bool, size)
	for y, row := range modules {
		if len(row) != size {
			return nil, fmt.Errorf("symbol: row %d has %d modules, want %d", y, len(row), size)
		}
		copied[y] = append([]bool(nil), row...)
	}

	return &Symbol{
		modules: copied,
		version: version,
		level:   level,
		border:  border,
		boxSize: boxSize,
	}, nil
}

// Size returns the number of modules per side, without the quiet zone.
func (s *Symbol) Size() int {
	return len(s.modules)
}

// Dimension returns the number of modules per side including the quiet zone.
func (s *Symbol) Dimension() int {
	return s.Size() + 2*s.border
}

// PixelSize returns the side length in pixels of a file rendering. File
// renderers refuse symbols whose PixelSize exceeds MaxPixelSize.
func (s *Symbol) PixelSize() int {
	return s.Dimension() * s.boxSize
}

// Version returns the QR version the encoder applied (1-40).
func (s *Symbol) Version() int { return s.version }

// Level returns the applied error-correction level.
func (s *Symbol) Level() ErrorLevel { return s.level }

// Border returns the quiet zone width in modules.
func (s *Symbol) Border() int { return s.border }

// BoxSize returns the pixels per module for file renderings.
func (s *Symbol) BoxSize() int { return s.boxSize }

// Dark reports whether the module at column x, row y is dark. Coordinates
// cover the bordered area, so (0, 0) is the top-left corner of the quiet
// zone. Anything outside the symbol proper is light.
func (s *Symbol) Dark(x, y int) bool {
	x -= s.border
	y -= s.border
	if x < 0 || y < 0 || x >= s.Size() || y >= s.Size() {
		return false
	}
	return s.modules[y][x]
}

// Equal reports whether two symbols have identical modules and metadata.
func (s *Symbol) Equal(other *Symbol) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.version != other.version || s.level != other.level ||
		s.border != other.border || s.boxSize != other.boxSize ||
		s.Size() != other.Size() {
		return false
	}
	for y := range s.modules {
		for x := range s.modules[y] {
			if s.modules[y][x] != other.modules[y][x] {
				return false
			}
		}
	}
	return true
}
