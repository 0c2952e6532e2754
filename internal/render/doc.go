// Package render draws an encoded model.Symbol.
//
// Three outputs are supported:
//   - Terminal: half-block text grid, optionally ANSI colored (termenv)
//   - Raster: PNG image with flat black/white fills
//   - Vector: SVG document with a single path (beevik/etree)
//
// File outputs are selected by model.Format. Render dispatches on a
// model.RenderTarget, which is how the CLI uses this package. File images
// wider than model.MaxPixelSize are refused with ErrImageTooLarge.
package render
