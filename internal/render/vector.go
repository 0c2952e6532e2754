package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/shinji-kodama/qr-terminal/internal/model"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Document builds the SVG document for symbol. The viewBox is measured in
// modules while width and height are in pixels, so the image scales with
// BoxSize without changing the path data.
func Document(symbol *model.Symbol) *etree.Document {
	dim := strconv.Itoa(symbol.Dimension())
	px := strconv.Itoa(symbol.PixelSize())

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("version", "1.1")
	svg.CreateAttr("width", px)
	svg.CreateAttr("height", px)
	svg.CreateAttr("viewBox", "0 0 "+dim+" "+dim)
	svg.CreateAttr("shape-rendering", "crispEdges")

	bg := svg.CreateElement("rect")
	bg.CreateAttr("width", dim)
	bg.CreateAttr("height", dim)
	bg.CreateAttr("fill", "#ffffff")

	path := svg.CreateElement("path")
	path.CreateAttr("id", "qr-path")
	path.CreateAttr("fill", "#000000")
	path.CreateAttr("fill-rule", "nonzero")
	path.CreateAttr("stroke", "none")
	path.CreateAttr("d", PathData(symbol))

	doc.Indent(2)
	return doc
}

// PathData returns the SVG path commands covering every dark module.
// Horizontal runs of dark modules are merged into a single rectangle.
func PathData(symbol *model.Symbol) string {
	dim := symbol.Dimension()

	var b strings.Builder
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; {
			if !symbol.Dark(x, y) {
				x++
				continue
			}
			start := x
			for x < dim && symbol.Dark(x, y) {
				x++
			}
			run := x - start
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "M%d %dh%dv1h-%dz", start, y, run, run)
		}
	}
	return b.String()
}

// Vector writes symbol to w as an SVG document. The output starts with the
// <svg> root element; no XML declaration is emitted.
func Vector(w io.Writer, symbol *model.Symbol) error {
	if err := CheckPixelSize(symbol); err != nil {
		return err
	}
	_, err := Document(symbol).WriteTo(w)
	return err
}
