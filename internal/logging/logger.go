package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction
type Options struct {
	Level  string // logrus level name, defaults to info
	Format string // "text" or "json"
	Output io.Writer
}

// New builds a logger from options
func New(opts Options) (*logrus.Logger, error) {
	log := logrus.New()

	if opts.Output != nil {
		log.SetOutput(opts.Output)
	} else {
		log.SetOutput(os.Stderr)
	}

	switch strings.ToLower(opts.Format) {
	case "", "text":
		log.SetFormatter(NewColoredFormatter())
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format: %s", opts.Format)
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	log.SetLevel(level)

	return log, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
