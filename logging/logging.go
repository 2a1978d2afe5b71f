package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// Log is the default logger for the application.
	Log = logrus.New()
)

// Init initializes the logger with the given log level and format. format
// is "text" (the default when empty) or "json".
func Init(level, format string) error {
	return configure(Log, os.Stderr, level, format)
}

func configure(l *logrus.Logger, out io.Writer, level, format string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	var formatter logrus.Formatter
	switch format {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}

	l.SetLevel(logLevel)
	l.SetOutput(out)
	l.SetFormatter(formatter)
	return nil
}
