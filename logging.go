package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger. Logs never go to stdout, which carries the JSON result.
func NewLogger(stderr io.Writer, level, file string, debug bool) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: file == "",
		FullTimestamp:    true,
	})

	out := stderr
	if file != "" {
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	logger.SetOutput(out)

	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, &ConfigError{Field: "log.level", Message: fmt.Sprintf("%q: %v", level, err)}
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)

	return logger, nil
}

// CloseLogger releases the log file, if any
func CloseLogger(logger *logrus.Logger) error {
	if f, ok := logger.Out.(*lumberjack.Logger); ok {
		return f.Close()
	}
	return nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
