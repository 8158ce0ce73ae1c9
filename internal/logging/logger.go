package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/priyankan19/oerhub/internal/config"
)

// New builds the process logger. Development gets human-readable console
// output, production gets JSON.
func New(service string) zerolog.Logger {
	appConfig := config.LoadAppConfig()

	var logger zerolog.Logger
	if appConfig.Env == "production" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	return logger.With().
		Timestamp().
		Str("service", service).
		Logger()
}
