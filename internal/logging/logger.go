package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger from the environment.
//
//	GALLERY_LOG_LEVEL   debug, info, warn, error (default: info)
//	GALLERY_LOG_FORMAT  json for raw JSON lines (Lambda), anything else for console output
func Init() {
	zerolog.SetGlobalLevel(parseLevel(os.Getenv("GALLERY_LOG_LEVEL")))
	log.Logger = zerolog.New(writer(os.Getenv("GALLERY_LOG_FORMAT"))).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func writer(format string) io.Writer {
	if strings.EqualFold(format, "json") {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr}
}
