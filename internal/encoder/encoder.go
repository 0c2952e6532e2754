package encoder

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/shinji-kodama/qr-terminal/internal/logging"
	"github.com/shinji-kodama/qr-terminal/internal/model"
)

// ErrDataTooLong is returned when the payload does not fit the requested
// version, or any version at all in auto mode.
var ErrDataTooLong = errors.New("data too long for QR symbol")

// Generator encodes requests into symbols. The CLI depends on this
// interface rather than on Encoder directly.
type Generator interface {
	Encode(req model.EncodingRequest) (*model.Symbol, error)
}

// Encoder is the Generator backed by skip2/go-qrcode.
//
// It holds no state: every call builds a fresh *qrcode.QRCode, so nothing
// from one encoding can leak into the next.
type Encoder struct{}

// New creates an Encoder.
func New() *Encoder {
	return &Encoder{}
}

// recoveryLevels maps the four error-correction levels to the library's
// constants. skip2 names them Low/Medium/High/Highest, which correspond to
// the standard L/M/Q/H.
var recoveryLevels = map[model.ErrorLevel]qrcode.RecoveryLevel{
	model.LevelLow:      qrcode.Low,
	model.LevelMedium:   qrcode.Medium,
	model.LevelQuartile: qrcode.High,
	model.LevelHigh:     qrcode.Highest,
}

// RecoveryLevel returns the library constant for level.
func RecoveryLevel(level model.ErrorLevel) (qrcode.RecoveryLevel, error) {
	rl, ok := recoveryLevels[level]
	if !ok {
		return 0, fmt.Errorf("unsupported error correction level %q", level)
	}
	return rl, nil
}

// Encode builds the symbol for req. With an auto version the smallest
// fitting version is chosen; a fixed version is used as-is and the call
// fails with ErrDataTooLong when the payload does not fit.
func (e *Encoder) Encode(req model.EncodingRequest) (*model.Symbol, error) {
	logger := logging.GetLogger("encoder")

	rl, err := RecoveryLevel(req.Level())
	if err != nil {
		return nil, err
	}

	var q *qrcode.QRCode
	if req.Version().IsAuto() {
		q, err = qrcode.New(req.Text(), rl)
	} else {
		q, err = qrcode.NewWithForcedVersion(req.Text(), req.Version().Number(), rl)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (level %s, version %s): %v", ErrDataTooLong, req.Level(), req.Version(), err)
	}

	// The library draws a fixed four-module quiet zone; the border is
	// applied by model.Symbol instead so any width can be requested.
	q.DisableBorder = true

	symbol, err := model.NewSymbol(q.Bitmap(), q.VersionNumber, req.Level(), req.Border(), req.BoxSize())
	if err != nil {
		return nil, fmt.Errorf("building symbol: %w", err)
	}

	logger.Debug().
		Int("version", symbol.Version()).
		Int("modules", symbol.Size()).
		Str("level", symbol.Level().String()).
		Msg("Symbol encoded")

	return symbol, nil
}
