package config

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// LogConfig configures the logrus standard logger
type LogConfig struct {
	// One of `debug`, `info`, `warn` or `error`
	Level string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	// `text` for human readable output or `json` for structured output
	Format string `yaml:"format" default:"text" validate:"oneof=text json"`
}

// LogrusLevel returns the logrus level of the configured level name
func (lc *LogConfig) LogrusLevel() (log.Level, error) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrapf(err, "invalid log level %q", lc.Level)
	}
	return level, nil
}

// Formatter returns the logrus formatter of the configured format
func (lc *LogConfig) Formatter() log.Formatter {
	if lc.Format == "json" {
		return &log.JSONFormatter{}
	}
	return &prefixed.TextFormatter{}
}

// Apply configures the standard logger to write to out
func (lc *LogConfig) Apply(out io.Writer) error {
	level, err := lc.LogrusLevel()
	if err != nil {
		return err
	}

	log.SetLevel(level)
	log.SetFormatter(lc.Formatter())
	log.SetOutput(out)
	return nil
}
