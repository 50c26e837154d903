package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging capability used throughout the
// emulator. It is satisfied by *logrus.Logger and
// *logrus.Entry as well as the loggers in this package.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns a Logger writing plain text to stderr, at
// info level.
func New() Logger {
	return NewWithWriter(os.Stderr, false)
}

// NewWithWriter returns a Logger writing plain text to w. If
// debug is set, debug messages are written as well.
func NewWithWriter(w io.Writer, debug bool) Logger {
	l := logrus.New()
	l.SetOutput(w)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// WithComponent returns a Logger that tags every message with
// the given component name, when l is backed by logrus.
func WithComponent(l Logger, component string) Logger {
	if lr, ok := l.(*logrus.Logger); ok {
		return lr.WithField("component", component)
	}
	return l
}
