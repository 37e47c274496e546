package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. The level is warn, or debug
// when verbose is set.
func New(w io.Writer, verbose bool, noColor bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
