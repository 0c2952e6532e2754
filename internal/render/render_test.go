package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/qr-terminal/internal/encoder"
	"github.com/shinji-kodama/qr-terminal/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func encode(t *testing.T, text string, border, boxSize int) *model.Symbol {
	t.Helper()
	req, err := model.NewEncodingRequest(text, model.LevelMedium, border, boxSize, model.AutoVersion())
	require.NoError(t, err)
	symbol, err := encoder.New().Encode(req)
	require.NoError(t, err)
	return symbol
}

// cellHalves decodes a half-block glyph back into its filled halves.
func cellHalves(t *testing.T, r rune) (top, bottom bool) {
	t.Helper()
	switch r {
	case ' ':
		return false, false
	case '▀':
		return true, false
	case '▄':
		return false, true
	case '█':
		return true, true
	default:
		t.Fatalf("unexpected glyph %q", r)
		return false, false
	}
}

func terminalLines(t *testing.T, symbol *model.Symbol, opts TerminalOptions) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Terminal(&buf, symbol, opts))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestTerminal_Shape(t *testing.T) {
	symbol := encode(t, "Hello World", 4, 1)
	lines := terminalLines(t, symbol, TerminalOptions{})

	dim := symbol.Dimension()
	assert.Len(t, lines, (dim+1)/2)
	for _, line := range lines {
		assert.Equal(t, dim, len([]rune(line)))
	}
}

// TestTerminal_MatchesModules decodes the text grid back into modules and
// compares them with the symbol.
func TestTerminal_MatchesModules(t *testing.T) {
	symbol := encode(t, "Hello World", 2, 1)
	lines := terminalLines(t, symbol, TerminalOptions{})

	dim := symbol.Dimension()
	for row, line := range lines {
		for x, r := range []rune(line) {
			top, bottom := cellHalves(t, r)
			y := row * 2
			assert.Equal(t, symbol.Dark(x, y), top, "module (%d,%d)", x, y)
			if y+1 < dim {
				assert.Equal(t, symbol.Dark(x, y+1), bottom, "module (%d,%d)", x, y+1)
			} else {
				assert.False(t, bottom, "padding half must stay empty")
			}
		}
	}
}

// TestTerminal_InvertIsComplement checks that inverting flips the filled
// state of every module while keeping the grid shape.
func TestTerminal_InvertIsComplement(t *testing.T) {
	for _, border := range []int{0, 1, 4} {
		symbol := encode(t, "invert me", border, 1)
		plain := terminalLines(t, symbol, TerminalOptions{})
		inverted := terminalLines(t, symbol, TerminalOptions{Invert: true})
		require.Len(t, inverted, len(plain))

		dim := symbol.Dimension()
		for row := range plain {
			p, i := []rune(plain[row]), []rune(inverted[row])
			require.Len(t, i, len(p))
			for x := range p {
				pt, pb := cellHalves(t, p[x])
				it, ib := cellHalves(t, i[x])
				assert.NotEqual(t, pt, it, "border %d module (%d,%d)", border, x, row*2)
				if row*2+1 < dim {
					assert.NotEqual(t, pb, ib, "border %d module (%d,%d)", border, x, row*2+1)
				}
			}
		}
	}
}

func TestTerminal_Colored(t *testing.T) {
	symbol := encode(t, "colors", 4, 1)

	var plain, colored bytes.Buffer
	require.NoError(t, Terminal(&plain, symbol, TerminalOptions{}))
	require.NoError(t, Terminal(&colored, symbol, TerminalOptions{Colored: true}))

	assert.NotContains(t, plain.String(), "\x1b[")

	lines := strings.Split(strings.TrimSuffix(colored.String(), "\n"), "\n")
	plainLines := strings.Split(strings.TrimSuffix(plain.String(), "\n"), "\n")
	require.Len(t, lines, len(plainLines))
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, "\x1b["), "line %d lacks color escape", i)
		assert.True(t, strings.HasSuffix(line, "\x1b[0m"), "line %d lacks reset", i)
		assert.Contains(t, line, plainLines[i])
	}

	var inverted bytes.Buffer
	require.NoError(t, Terminal(&inverted, symbol, TerminalOptions{Colored: true, Invert: true}))
	assert.NotEqual(t, colored.String(), inverted.String())
}

// TestTerminal_ColoredInvertFlipsPolarity checks that the colors stay fixed
// under Invert, so colored output carries the inverted grid instead of
// collapsing back to the non-inverted picture.
func TestTerminal_ColoredInvertFlipsPolarity(t *testing.T) {
	symbol := encode(t, "polarity", 4, 1)

	colored := terminalLines(t, symbol, TerminalOptions{Colored: true})
	coloredInverted := terminalLines(t, symbol, TerminalOptions{Colored: true, Invert: true})
	plainInverted := terminalLines(t, symbol, TerminalOptions{Invert: true})
	require.Len(t, coloredInverted, len(colored))
	require.Len(t, plainInverted, len(colored))

	for i := range colored {
		prefix := colorPrefix(t, colored[i])
		require.NotEmpty(t, prefix)
		assert.Equal(t, prefix, colorPrefix(t, coloredInverted[i]), "line %d: colors must not swap", i)
		assert.Equal(t, prefix+plainInverted[i]+"\x1b[0m", coloredInverted[i], "line %d", i)
	}
}

// colorPrefix returns the leading escape sequences of a colored line.
func colorPrefix(t *testing.T, line string) string {
	t.Helper()
	rest := line
	for strings.HasPrefix(rest, "\x1b[") {
		end := strings.IndexByte(rest, 'm')
		require.GreaterOrEqual(t, end, 0, "unterminated escape in %q", line)
		rest = rest[end+1:]
	}
	return line[:len(line)-len(rest)]
}

// TestRaster_Decodes writes a PNG, decodes it with image/png and reads the
// payload back with a QR decoder.
func TestRaster_Decodes(t *testing.T) {
	symbol := encode(t, "Hello World", 4, 4)

	var buf bytes.Buffer
	require.NoError(t, Raster(&buf, symbol))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, symbol.PixelSize(), img.Bounds().Dx())
	assert.Equal(t, symbol.PixelSize(), img.Bounds().Dy())
	assert.Equal(t, (21+8)*4, img.Bounds().Dx())

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	result, err := gozxingqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", result.GetText())
}

// TestImage_Dimensions checks that the pixel size is a function of module
// count, border and box size only.
func TestImage_Dimensions(t *testing.T) {
	tests := []struct {
		border, boxSize int
	}{
		{0, 1}, {4, 1}, {1, 3}, {4, 10},
	}

	for _, tt := range tests {
		symbol := encode(t, "dimensions", tt.border, tt.boxSize)
		img := Image(symbol)
		want := (symbol.Size() + 2*tt.border) * tt.boxSize
		assert.Equal(t, want, img.Bounds().Dx())
		assert.Equal(t, want, img.Bounds().Dy())

		// Top-left pixel is quiet zone (light) unless there is no border.
		assert.Equal(t, tt.border == 0, img.ColorIndexAt(0, 0) == 1)
	}
}

func TestVector_Document(t *testing.T) {
	symbol := encode(t, "Hello World", 4, 5)

	var buf bytes.Buffer
	require.NoError(t, Vector(&buf, symbol))
	require.True(t, strings.HasPrefix(buf.String(), "<svg"), "got %q", buf.String()[:20])

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "145", root.SelectAttrValue("width", ""))
	assert.Equal(t, "145", root.SelectAttrValue("height", ""))
	assert.Equal(t, "0 0 29 29", root.SelectAttrValue("viewBox", ""))

	path := root.SelectElement("path")
	require.NotNil(t, path)
	assert.Equal(t, PathData(symbol), path.SelectAttrValue("d", ""))
}

// TestPathData_CoversDarkModules rebuilds the module grid from the path
// commands and compares it with the symbol.
func TestPathData_CoversDarkModules(t *testing.T) {
	symbol := encode(t, "path data", 1, 1)
	dim := symbol.Dimension()

	grid := make([][]bool, dim)
	for i := range grid {
		grid[i] = make([]bool, dim)
	}

	for _, cmd := range strings.Split(PathData(symbol), " M") {
		var x, y, run, back int
		_, err := fmt.Sscanf(strings.TrimPrefix(cmd, "M"), "%d %dh%dv1h-%dz", &x, &y, &run, &back)
		require.NoError(t, err, "command %q", cmd)
		require.Equal(t, run, back)
		for i := 0; i < run; i++ {
			assert.False(t, grid[y][x+i], "module (%d,%d) drawn twice", x+i, y)
			grid[y][x+i] = true
		}
	}

	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			assert.Equal(t, symbol.Dark(x, y), grid[y][x], "module (%d,%d)", x, y)
		}
	}
}

func TestWriteFile(t *testing.T) {
	symbol := encode(t, "file output", 4, 2)
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "out.png")
	require.NoError(t, WriteFile(symbol, pngPath, model.FormatPNG))
	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	svgPath := filepath.Join(dir, "out.svg")
	require.NoError(t, WriteFile(symbol, svgPath, model.FormatSVG))
	data, err = os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<svg")))

	err = WriteFile(symbol, filepath.Join(dir, "missing", "out.png"), model.FormatPNG)
	assert.Error(t, err)
}

// TestFileRenderers_RejectOversizedImage uses a box size that is valid on
// its own but makes the image wider than model.MaxPixelSize.
func TestFileRenderers_RejectOversizedImage(t *testing.T) {
	symbol := encode(t, "Hello World", 4, 2000)
	require.Greater(t, symbol.PixelSize(), model.MaxPixelSize)

	assert.ErrorIs(t, CheckPixelSize(symbol), ErrImageTooLarge)
	assert.ErrorIs(t, Raster(&bytes.Buffer{}, symbol), ErrImageTooLarge)
	assert.ErrorIs(t, Vector(&bytes.Buffer{}, symbol), ErrImageTooLarge)

	path := filepath.Join(t.TempDir(), "big.png")
	assert.ErrorIs(t, WriteFile(symbol, path, model.FormatPNG), ErrImageTooLarge)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created")

	assert.NoError(t, CheckPixelSize(encode(t, "Hello World", 4, 1000)))
}

func TestSaveAs_UnsupportedFormat(t *testing.T) {
	symbol := encode(t, "formats", 4, 1)
	path := filepath.Join(t.TempDir(), "out.gif")

	err := SaveAs(symbol, path, "GIF")
	var unsupported *model.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "GIF", unsupported.Name)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created")

	require.NoError(t, SaveAs(symbol, path, "png"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	symbol := encode(t, "formats", 4, 1)
	err := Encode(&bytes.Buffer{}, symbol, model.Format("bmp"))
	var unsupported *model.UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
}

func TestRender_Dispatch(t *testing.T) {
	symbol := encode(t, "dispatch", 4, 1)
	dir := t.TempDir()

	var stdout bytes.Buffer
	require.NoError(t, Render(&stdout, symbol, model.TerminalTarget{}))
	assert.NotEmpty(t, stdout.String())

	stdout.Reset()
	rasterPath := filepath.Join(dir, "code.xyz")
	require.NoError(t, Render(&stdout, symbol, model.RasterFileTarget{Path: rasterPath}))
	assert.Empty(t, stdout.String(), "file targets must not write to stdout")
	data, err := os.ReadFile(rasterPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	vectorPath := filepath.Join(dir, "code.svg")
	require.NoError(t, Render(&stdout, symbol, model.VectorFileTarget{Path: vectorPath}))
	data, err = os.ReadFile(vectorPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<svg")))
}
