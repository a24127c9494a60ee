package main

import (
	"os"

	"github.com/rs/zerolog"
)

// zeroLogger adapts zerolog to the folio.Logger interface.
type zeroLogger struct {
	log zerolog.Logger
}

func newLogger() zeroLogger {
	return zeroLogger{
		log: zerolog.New(os.Stdout).With().Timestamp().Str("app", "go-folio").Logger(),
	}
}

func (l zeroLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l zeroLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l zeroLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
