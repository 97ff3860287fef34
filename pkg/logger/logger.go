// Package logger provides a zerolog-based structured logger for the engine.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level  string
	Pretty bool
}

// New builds a zerolog.Logger from cfg and sets the process-wide log level.
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer = os.Stdout
	logger := zerolog.New(writer).With().Timestamp().Caller().Logger()

	if cfg.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05"})
	}

	return logger
}

// SetGlobalLogger installs l as zerolog.DefaultContextLogger, the logger
// zerolog.Ctx returns for a context that carries none. The package-level
// logger of zerolog/log is left unchanged.
func SetGlobalLogger(l zerolog.Logger) {
	zerolog.DefaultContextLogger = &l
}
