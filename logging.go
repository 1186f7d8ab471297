package msgcat

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the logger used by this package. Bundle discovery failures are
// absorbed by the engine and only ever show up here, at debug level.
var Logger = log.With().Str("sys", "msgcat").Logger()

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	Logger = l.With().Str("sys", "msgcat").Logger()
}
