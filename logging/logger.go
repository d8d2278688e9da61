package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the game logger. LOG_LEVEL picks the level (default info)
// and LOG_FORMAT=json switches to the JSON formatter.
func New() *logrus.Logger {
	return NewFromEnv(os.LookupEnv)
}

// NewFromEnv is New with an injectable environment lookup.
func NewFromEnv(lookup func(string) (string, bool)) *logrus.Logger {
	log := logrus.New()

	level := logrus.InfoLevel
	if raw, ok := lookup("LOG_LEVEL"); ok {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)

	format, _ := lookup("LOG_FORMAT")
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// Discard returns a logger that drops everything, for tests and tools
// that only care about return values.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}
