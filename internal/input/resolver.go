package input

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/shinji-kodama/qr-terminal/internal/logging"
	"github.com/shinji-kodama/qr-terminal/internal/model"
)

// fileDescriptor is implemented by *os.File. Readers without a descriptor
// (buffers, pipes created in tests) are never interactive.
type fileDescriptor interface {
	Fd() uintptr
}

// Resolver picks the payload for an encoding run.
type Resolver struct {
	// In is the standard input stream.
	In io.Reader

	// IsTerminal reports whether In is an interactive terminal, in which
	// case there is no piped data to read.
	IsTerminal func() bool
}

// NewResolver returns a Resolver reading from in. Terminal detection uses
// go-isatty when in is backed by a file descriptor.
func NewResolver(in io.Reader) *Resolver {
	return &Resolver{
		In:         in,
		IsTerminal: func() bool { return isTerminal(in) },
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(fileDescriptor)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Resolve returns explicitText verbatim when it is non-empty. Otherwise it
// reads standard input until EOF and returns the trimmed content.
//
// Errors:
//   - *model.InputError wrapping model.ErrNoData when stdin is a terminal
//   - *model.InputError wrapping model.ErrEmptyInput when stdin holds only whitespace
//   - model.ErrInterrupted when ctx is cancelled while waiting for data
func (r *Resolver) Resolve(ctx context.Context, explicitText string) (string, error) {
	logger := logging.GetLogger("input")

	if explicitText != "" {
		logger.Debug().Int("bytes", len(explicitText)).Msg("Using text from argument")
		return explicitText, nil
	}

	if r.IsTerminal != nil && r.IsTerminal() {
		return "", &model.InputError{Err: model.ErrNoData}
	}

	data, err := r.readAll(ctx)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(data)
	if text == "" {
		return "", &model.InputError{Err: model.ErrEmptyInput}
	}
	logger.Debug().Int("bytes", len(text)).Msg("Read text from stdin")
	return text, nil
}

// readAll reads r.In to EOF. The read runs in its own goroutine so that an
// interrupt (ctx cancellation) can abandon it; a blocked read cannot be
// cancelled otherwise.
func (r *Resolver) readAll(ctx context.Context) (string, error) {
	if r.In == nil {
		return "", nil
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r.In)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", model.ErrInterrupted
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("reading stdin: %w", res.err)
		}
		return string(res.data), nil
	}
}
