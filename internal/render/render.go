package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shinji-kodama/qr-terminal/internal/logging"
	"github.com/shinji-kodama/qr-terminal/internal/model"
)

// ErrImageTooLarge is returned by the file renderers when the image side
// would exceed model.MaxPixelSize.
var ErrImageTooLarge = errors.New("image too large")

// CheckPixelSize fails with ErrImageTooLarge when symbol cannot be written
// as a file image.
func CheckPixelSize(symbol *model.Symbol) error {
	if px := symbol.PixelSize(); px > model.MaxPixelSize {
		return fmt.Errorf("%w: %dx%d pixels exceeds the %d pixel limit", ErrImageTooLarge, px, px, model.MaxPixelSize)
	}
	return nil
}

// Encode writes symbol to w in the given file format.
// Unknown formats fail with *model.UnsupportedFormatError.
func Encode(w io.Writer, symbol *model.Symbol, format model.Format) error {
	switch format {
	case model.FormatPNG:
		return Raster(w, symbol)
	case model.FormatSVG:
		return Vector(w, symbol)
	default:
		return &model.UnsupportedFormatError{Name: format.String()}
	}
}

// WriteFile creates (or truncates) path and writes symbol to it in format.
// The format and image size are checked before the file is touched. A failure part-way
// through leaves whatever was written so far.
func WriteFile(symbol *model.Symbol, path string, format model.Format) (err error) {
	if format != model.FormatPNG && format != model.FormatSVG {
		return &model.UnsupportedFormatError{Name: format.String()}
	}
	if err := CheckPixelSize(symbol); err != nil {
		return err
	}

	logger := logging.GetLogger("render")
	done := logging.LogOperationStart(logger, "write "+format.String())
	defer done()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	// Close errors matter here: they can report a failed flush of the image.
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if err := Encode(f, symbol, format); err != nil {
		return fmt.Errorf("writing %s image: %w", format, err)
	}
	logger.Debug().Str("path", path).Int("pixels", symbol.PixelSize()).Msg("Image written")
	return nil
}

// SaveAs writes symbol to path using an explicitly named format such as
// "png" or "SVG". Unknown names fail with *model.UnsupportedFormatError
// and no file is created.
func SaveAs(symbol *model.Symbol, path, formatName string) error {
	format, err := model.ParseFormat(formatName)
	if err != nil {
		return err
	}
	return WriteFile(symbol, path, format)
}

// Render draws symbol to target. Terminal output goes to stdout; file
// targets write to their path.
func Render(stdout io.Writer, symbol *model.Symbol, target model.RenderTarget) error {
	switch t := target.(type) {
	case model.TerminalTarget:
		return Terminal(stdout, symbol, TerminalOptions{Invert: t.Invert, Colored: t.Colored})
	case model.RasterFileTarget:
		return WriteFile(symbol, t.Path, model.FormatPNG)
	case model.VectorFileTarget:
		return WriteFile(symbol, t.Path, model.FormatSVG)
	default:
		return fmt.Errorf("unsupported render target %T", target)
	}
}
