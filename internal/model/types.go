package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorLevel is the QR error-correction strength. Higher levels add more
// redundancy, which tolerates more damage but needs a larger symbol for the
// same payload.
type ErrorLevel string

const (
	// LevelLow recovers roughly 7% of damaged codewords.
	LevelLow ErrorLevel = "L"

	// LevelMedium recovers roughly 15% of damaged codewords. This is the default.
	LevelMedium ErrorLevel = "M"

	// LevelQuartile recovers roughly 25% of damaged codewords.
	LevelQuartile ErrorLevel = "Q"

	// LevelHigh recovers roughly 30% of damaged codewords.
	LevelHigh ErrorLevel = "H"
)

// ErrorLevels lists every supported level ordered from weakest to strongest.
var ErrorLevels = []ErrorLevel{LevelLow, LevelMedium, LevelQuartile, LevelHigh}

// String returns the single-letter name of the level.
func (l ErrorLevel) String() string {
	return string(l)
}

// IsValid checks whether the level is one of the four supported strengths.
func (l ErrorLevel) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelQuartile, LevelHigh:
		return true
	default:
		return false
	}
}

// Percent returns the approximate share of damage the level can recover from.
func (l ErrorLevel) Percent() int {
	switch l {
	case LevelLow:
		return 7
	case LevelMedium:
		return 15
	case LevelQuartile:
		return 25
	case LevelHigh:
		return 30
	default:
		return 0
	}
}

// ParseErrorLevel converts a string to an ErrorLevel. Matching is
// case-insensitive, so "h" and "H" both yield LevelHigh.
func ParseErrorLevel(s string) (ErrorLevel, error) {
	level := ErrorLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !level.IsValid() {
		return "", fmt.Errorf("invalid error correction level: %q (valid: L, M, Q, H)", s)
	}
	return level, nil
}

// MinVersion and MaxVersion bound the QR symbol version numbers.
const (
	MinVersion = 1
	MaxVersion = 40
)

// Version selects the QR symbol size class. It is either Auto, where the
// encoder picks the smallest version that fits the payload, or a fixed
// version number in [MinVersion, MaxVersion] that pins the symbol size.
//
// The zero value is Auto.
type Version struct {
	number int
}

// AutoVersion returns a Version that lets the encoder choose the size.
func AutoVersion() Version {
	return Version{}
}

// FixedVersion returns a Version pinned to n. It fails when n is outside
// the range 1..40.
func FixedVersion(n int) (Version, error) {
	if n < MinVersion || n > MaxVersion {
		return Version{}, fmt.Errorf("invalid version %d: must be between %d and %d", n, MinVersion, MaxVersion)
	}
	return Version{number: n}, nil
}

// ParseVersion accepts "auto" (any case) or an integer between 1 and 40.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "auto") {
		return AutoVersion(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: expected \"auto\" or a number between %d and %d", s, MinVersion, MaxVersion)
	}
	return FixedVersion(n)
}

// IsAuto reports whether the encoder should pick the version.
func (v Version) IsAuto() bool {
	return v.number == 0
}

// Number returns the pinned version number, or 0 for Auto.
func (v Version) Number() int {
	return v.number
}

// String returns "auto" or the pinned version number.
func (v Version) String() string {
	if v.IsAuto() {
		return "auto"
	}
	return strconv.Itoa(v.number)
}

// Default encoding parameters. They match the CLI flag defaults.
const (
	DefaultBorder  = 4
	DefaultBoxSize = 1

	// MaxPixelSize caps the side of a file image in pixels. Border and box
	// size are each bounded by it too, so Dimension·BoxSize cannot overflow.
	MaxPixelSize = 1 << 15
)

// EncodingRequest describes a single encoding: the payload plus every knob
// the encoder and the renderers need. Fields are unexported so a request
// cannot change after NewEncodingRequest has validated it.
type EncodingRequest struct {
	text    string
	level   ErrorLevel
	border  int
	boxSize int
	version Version
}

// NewEncodingRequest validates the parameters and returns an immutable request.
//
// Constraints:
//   - text must not be empty
//   - level must be one of L, M, Q, H
//   - border is the quiet zone width in modules, 0 to MaxPixelSize
//   - boxSize is the pixels per module for file output, 1 to MaxPixelSize
func NewEncodingRequest(text string, level ErrorLevel, border, boxSize int, version Version) (EncodingRequest, error) {
	if text == "" {
		return EncodingRequest{}, fmt.Errorf("encoding request: text must not be empty")
	}
	if !level.IsValid() {
		return EncodingRequest{}, fmt.Errorf("encoding request: invalid error correction level %q", level)
	}
	if border < 0 || border > MaxPixelSize {
		return EncodingRequest{}, fmt.Errorf("encoding request: border %d must be between 0 and %d", border, MaxPixelSize)
	}
	if boxSize < 1 || boxSize > MaxPixelSize {
		return EncodingRequest{}, fmt.Errorf("encoding request: box size %d must be between 1 and %d", boxSize, MaxPixelSize)
	}
	if !version.IsAuto() && (version.Number() < MinVersion || version.Number() > MaxVersion) {
		return EncodingRequest{}, fmt.Errorf("encoding request: invalid version %d", version.Number())
	}
	return EncodingRequest{
		text:    text,
		level:   level,
		border:  border,
		boxSize: boxSize,
		version: version,
	}, nil
}

// Text returns the payload.
func (r EncodingRequest) Text() string { return r.text }

// Level returns the requested error-correction level.
func (r EncodingRequest) Level() ErrorLevel { return r.level }

// Border returns the quiet zone width in modules.
func (r EncodingRequest) Border() int { return r.border }

// BoxSize returns the pixels per module used by file renderers.
func (r EncodingRequest) BoxSize() int { return r.boxSize }

// Version returns the requested symbol version.
func (r EncodingRequest) Version() Version { return r.version }
