package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/qr-terminal/internal/encoder"
	"github.com/shinji-kodama/qr-terminal/internal/input"
	"github.com/shinji-kodama/qr-terminal/internal/logging"
	"github.com/shinji-kodama/qr-terminal/internal/model"
	"github.com/shinji-kodama/qr-terminal/internal/render"
)

// Preview limits for the "input:" diagnostic line.
const (
	previewMaxRunes  = 50
	previewKeepRunes = 47
)

// reporter writes human-readable progress lines to the diagnostic stream.
// Nothing is written when quiet is set.
type reporter struct {
	w     io.Writer
	quiet bool
}

func (r *reporter) printf(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, format+"\n", args...)
}

// preview describes the payload before it is drawn in the terminal.
func (r *reporter) preview(data string) {
	count := utf8.RuneCountInString(data)
	r.printf("data: %d symbols", count)
	r.printf("input: %s", Preview(data))
	r.printf("QR-code:")
	r.printf("")
}

// Preview shortens data for display: anything longer than 50 characters is
// cut to its first 47 characters followed by "...".
func Preview(data string) string {
	runes := []rune(data)
	if len(runes) <= previewMaxRunes {
		return data
	}
	return string(runes[:previewKeepRunes]) + "..."
}

// validate rejects geometry flags before any input is read, so a bad
// command line never blocks on stdin.
func (f *rootFlags) validate() error {
	if f.border < 0 || f.border > model.MaxPixelSize {
		return &usageError{err: fmt.Errorf("invalid border %d: must be between 0 and %d", f.border, model.MaxPixelSize)}
	}
	if f.boxSize < 1 || f.boxSize > model.MaxPixelSize {
		return &usageError{err: fmt.Errorf("invalid box size %d: must be between 1 and %d", f.boxSize, model.MaxPixelSize)}
	}
	return nil
}

// target returns the render target selected by the flags and whether a
// file extension was recognized (always true for terminal output).
func (f *rootFlags) target() (model.RenderTarget, bool) {
	if f.output == "" {
		return model.TerminalTarget{Invert: f.invert, Colored: f.colored}, true
	}
	return model.TargetForPath(f.output)
}

// runGenerate is the main workflow: resolve input, encode, render.
func runGenerate(ctx context.Context, cmd *cobra.Command, text string, flags *rootFlags, gen encoder.Generator) error {
	logger := logging.GetLogger("cli")
	diag := &reporter{w: cmd.ErrOrStderr(), quiet: flags.quiet}

	// Step 1: Validate flags that the parser cannot check on its own.
	if err := flags.validate(); err != nil {
		return err
	}

	// Step 2: Obtain the text from the argument or stdin.
	data, err := input.NewResolver(cmd.InOrStdin()).Resolve(ctx, text)
	if err != nil {
		return err
	}

	req, err := model.NewEncodingRequest(data, flags.level, flags.border, flags.boxSize, flags.version)
	if err != nil {
		return &usageError{err: err}
	}
	logger.Debug().
		Str("level", req.Level().String()).
		Str("version", req.Version().String()).
		Int("border", req.Border()).
		Int("boxSize", req.BoxSize()).
		Msg("Encoding request built")

	target, recognized := flags.target()
	if flags.output == "" {
		diag.preview(data)
	}

	// Step 3: Encode.
	done := logging.LogOperationStart(logger, "encode")
	symbol, err := gen.Encode(req)
	done()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "encoding failed", err)
	}

	// Step 4: Render to the terminal or the output file.
	if flags.output != "" {
		if err := render.CheckPixelSize(symbol); err != nil {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("%v; lower --box-size or --border", err))
		}
	}
	if !recognized {
		diag.printf("unknown extension %q, saving as PNG", filepath.Ext(flags.output))
	}
	if err := render.Render(cmd.OutOrStdout(), symbol, target); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "rendering failed", err)
	}
	if flags.output != "" {
		diag.printf("QR-code saved in: %s", flags.output)
	}
	return nil
}
