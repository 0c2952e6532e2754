package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger.
//
// Levels:
//   - quiet: logging disabled entirely
//   - verbose: debug records and caller information
//   - default: warnings and errors only
func Setup(w io.Writer, verbose, quiet bool) {
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()
	if verbose && !quiet {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger

	log.Debug().Bool("verbose", verbose).Msg("Logger initialized")
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion along with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
