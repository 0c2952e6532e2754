// Package encoder turns an EncodingRequest into a model.Symbol.
//
// The QR encoding itself (Reed-Solomon coding, module placement, masking)
// is done by github.com/skip2/go-qrcode. This package only translates the
// request into the library's configuration and copies the resulting module
// matrix into an immutable Symbol.
package encoder
