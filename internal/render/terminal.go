package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/shinji-kodama/qr-terminal/internal/model"
)

// TerminalOptions controls the text rendering.
type TerminalOptions struct {
	// Invert draws light modules filled instead of dark ones.
	Invert bool

	// Colored wraps each line in ANSI escapes (black foreground on bright
	// white) so the code keeps its contrast regardless of the terminal's
	// color scheme.
	Colored bool
}

// halfBlocks is indexed by top | bottom<<1, where a set bit means that
// half of the character cell is filled.
var halfBlocks = [4]rune{' ', '▀', '▄', '█'}

// Terminal writes symbol as a text grid. Every character covers one module
// column and two module rows, so the output is Dimension characters wide and
// ceil(Dimension/2) lines tall. When the dimension is odd the lower half of
// the last line is padding and is never filled.
func Terminal(w io.Writer, symbol *model.Symbol, opts TerminalOptions) error {
	dim := symbol.Dimension()
	filled := func(x, y int) bool {
		if y >= dim {
			return false
		}
		return symbol.Dark(x, y) != opts.Invert
	}

	var paint func(string) string
	if opts.Colored {
		paint = colorizer()
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for y := 0; y < dim; y += 2 {
		line.Reset()
		for x := 0; x < dim; x++ {
			idx := 0
			if filled(x, y) {
				idx |= 1
			}
			if filled(x, y+1) {
				idx |= 2
			}
			line.WriteRune(halfBlocks[idx])
		}

		s := line.String()
		if paint != nil {
			s = paint(s)
		}
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// colorizer returns a function that styles one line: filled halves black on
// a bright white cell. The colors stay fixed, so Invert flips the polarity
// in colored mode the same way it does in plain mode. The profile is forced
// to ANSI because colored output is an explicit request, even when stdout
// is not a terminal.
func colorizer() func(string) string {
	out := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.ANSI))

	var fg, bg termenv.Color = termenv.ANSIBlack, termenv.ANSIBrightWhite

	return func(s string) string {
		return out.String(s).Foreground(fg).Background(bg).String()
	}
}
