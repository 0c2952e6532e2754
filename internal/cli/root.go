package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/qr-terminal/internal/encoder"
	"github.com/shinji-kodama/qr-terminal/internal/logging"
	"github.com/shinji-kodama/qr-terminal/internal/model"
)

// Build information printed by --version-info. main injects the values
// it received through ldflags.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the flag values for the root command.
type rootFlags struct {
	level       model.ErrorLevel
	border      int
	boxSize     int
	version     model.Version
	invert      bool
	colored     bool
	output      string
	quiet       bool
	verbose     bool
	versionInfo bool
}

// usageError marks a mistake on the command line itself (bad flag value,
// too many arguments) as opposed to a failure while running.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// NewRootCommand creates the qr command.
func NewRootCommand() *cobra.Command {
	return newCommand(encoder.New())
}

// newCommand builds the command around gen. Tests pass their own Generator.
func newCommand(gen encoder.Generator) *cobra.Command {
	flags := &rootFlags{
		level:   model.LevelMedium,
		border:  model.DefaultBorder,
		boxSize: model.DefaultBoxSize,
		version: model.AutoVersion(),
	}

	cmd := &cobra.Command{
		Use:   "qr [text]",
		Short: "Generate QR codes from stdin or arguments",
		Long: `qr encodes text as a QR code and draws it in the terminal or saves it
as an image. The text comes from the argument, or from standard input
when no argument is given.`,
		Example: `  echo "Hello World" | qr
  qr "Hello World"
  curl -s https://example.com | qr -c
  cat file.txt | qr -e H -b 2
  ip addr show | qr --output qr.png
  echo "WIFI:T:WPA;S:MyNetwork;P:password;;" | qr`,

		// At most one positional argument: the text to encode.
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},

		// Errors and usage are printed by HandleError.
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), flags.verbose, flags.quiet)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.versionInfo {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
				return err
			}

			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return runGenerate(cmd.Context(), cmd, text, flags, gen)
		},
	}

	// cobra's own --version flag would clash with -v/--version below, so
	// the Version field stays unset and --version-info is handled in RunE.
	f := cmd.Flags()
	f.SortFlags = false
	f.VarP(newLevelValue(&flags.level), "error-correction", "e", levelUsage())
	f.IntVarP(&flags.border, "border", "b", model.DefaultBorder, "Quiet zone width in modules")
	f.IntVarP(&flags.boxSize, "box-size", "s", model.DefaultBoxSize, "Pixels per module for image output")
	f.VarP(newVersionValue(&flags.version), "version", "v",
		"QR version: auto picks the smallest that fits, 1-40 pins the size")
	f.BoolVarP(&flags.invert, "invert", "i", false, "Invert terminal colors")
	f.BoolVarP(&flags.colored, "colored", "c", false, "Use ANSI colors for terminal output")
	f.StringVarP(&flags.output, "output", "o", "", "Save to file instead of the terminal (.png, .svg)")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Print only the QR code, no diagnostics")
	f.BoolVar(&flags.verbose, "verbose", false, "Enable debug logging on stderr")
	f.BoolVar(&flags.versionInfo, "version-info", false, "Print version information and exit")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return cmd
}

// levelUsage lists every error correction level with its recovery share,
// e.g. "L(~7%), M(~15%)".
func levelUsage() string {
	parts := make([]string, 0, len(model.ErrorLevels))
	for _, level := range model.ErrorLevels {
		parts = append(parts, fmt.Sprintf("%s(~%d%%)", level, level.Percent()))
	}
	return "Error correction level: " + strings.Join(parts, ", ")
}

func versionString() string {
	return fmt.Sprintf("qr version %s (commit: %s, built: %s)", Version, Commit, Date)
}

// Execute runs the root command and exits the process with the code chosen
// by HandleError. It is the main entry point called from main.go.
func Execute(ctx context.Context, rootCmd *cobra.Command) {
	err := rootCmd.ExecuteContext(ctx)
	if code := HandleError(rootCmd, err); code != model.ExitSuccess {
		os.Exit(int(code))
	}
}

// HandleError prints err to the command's error stream and returns the
// exit code for it. A nil error yields ExitSuccess.
//
// Mapping:
//   - interrupt: short "aborted by user" notice
//   - input errors: "Error: ..." plus the full help when no data was supplied
//   - unsupported formats, usage and CLIError failures: "Error: ..."
//   - anything else: "unknown error: ..."
func HandleError(cmd *cobra.Command, err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}
	stderr := cmd.ErrOrStderr()

	var (
		inputErr       *model.InputError
		unsupportedErr *model.UnsupportedFormatError
		usageErr       *usageError
		cliErr         *model.CLIError
	)

	switch {
	case errors.Is(err, model.ErrInterrupted):
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, model.ErrInterrupted.Error())
		return model.ExitGeneralError

	case errors.As(err, &inputErr):
		printError(stderr, inputErr.Error())
		if errors.Is(err, model.ErrNoData) {
			fmt.Fprintln(stderr)
			cmd.SetOut(stderr)
			_ = cmd.Help()
		}
		return model.ExitGeneralError

	case errors.As(err, &unsupportedErr):
		printError(stderr, unsupportedErr.Error())
		return model.ExitGeneralError

	case errors.As(err, &usageErr):
		printError(stderr, usageErr.Error())
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return model.ExitGeneralError

	case errors.As(err, &cliErr):
		printError(stderr, cliErr.Error())
		return cliErr.Code

	default:
		fmt.Fprintf(stderr, "unknown error: %v\n", err)
		return model.ExitGeneralError
	}
}

// printError writes "Error: <message>" on its own line.
func printError(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}
