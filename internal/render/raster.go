package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/shinji-kodama/qr-terminal/internal/model"
)

// Fixed raster colors. They are not configurable.
var (
	FillColor       color.Color = color.Black
	BackgroundColor color.Color = color.White
)

// Image composites symbol into a two-color paletted image, BoxSize pixels
// per module, quiet zone included. Callers check the size with
// CheckPixelSize first; Image allocates PixelSize² bytes.
func Image(symbol *model.Symbol) *image.Paletted {
	px := symbol.PixelSize()
	box := symbol.BoxSize()
	dim := symbol.Dimension()

	// Index 0 is the background, so the zeroed pixel buffer starts out light.
	img := image.NewPaletted(image.Rect(0, 0, px, px), color.Palette{BackgroundColor, FillColor})

	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if !symbol.Dark(x, y) {
				continue
			}
			for dy := 0; dy < box; dy++ {
				row := img.Pix[img.PixOffset(x*box, y*box+dy):]
				for dx := 0; dx < box; dx++ {
					row[dx] = 1
				}
			}
		}
	}
	return img
}

// Raster writes symbol to w as a PNG image.
func Raster(w io.Writer, symbol *model.Symbol) error {
	if err := CheckPixelSize(symbol); err != nil {
		return err
	}
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	return encoder.Encode(w, Image(symbol))
}
