package contract

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

// exit is swapped out by tests.
var (
	osExit = os.Exit
	exit   = osExit
)

// Logger returns the shared stderr logger.
func Logger() *zerolog.Logger {
	return &logger
}

// SetLogLevel changes the level of the shared logger.
func SetLogLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	logger = logger.Level(lvl)
	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.WithLevel(zerolog.FatalLevel).Err(err).Msg(msg)
	exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	logger.Warn().Err(err).Msg(msg)
}

// LogInfo logs an informational message with optional fields.
func LogInfo(msg string, fields map[string]any) {
	logger.Info().Fields(fields).Msg(msg)
}

// SetLogOutput redirects the shared logger, keeping its level.
func SetLogOutput(w io.Writer) {
	logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true})
}
