// Package mbvhlog provides a core.Logger implementation backed by
// github.com/op/go-logging. The builder does not install it by itself: given
// a nil logger, it uses core.NopLogger.
package mbvhlog

import (
	"io"
	"os"

	"github.com/op/go-logging"

	"github.com/dcroot/mbvh/pkg/core"
)

// Level is the logger verbosity.
type Level logging.Level

const (
	Debug Level = iota
	Info
	Warning
)

// the module-level backend shared by every named logger, mirroring the
// single-backend-per-process setup of the logging libraries this one is
// modeled on.
var leveledBackend logging.LeveledBackend

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

type namedLogger struct {
	delegate *logging.Logger
}

func (l namedLogger) Debugf(format string, args ...interface{}) {
	l.delegate.Debugf(format, args...)
}

func (l namedLogger) Infof(format string, args ...interface{}) {
	l.delegate.Infof(format, args...)
}

func (l namedLogger) Warnf(format string, args ...interface{}) {
	l.delegate.Warningf(format, args...)
}

// New creates a new named core.Logger backed by go-logging.
func New(name string) core.Logger {
	return namedLogger{delegate: logging.MustGetLogger(name)}
}

// SetSink overrides where log output is written.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the minimum verbosity that will be emitted.
func SetLevel(level Level) {
	var loggerLevel logging.Level
	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Warning:
		loggerLevel = logging.WARNING
	}
	leveledBackend.SetLevel(loggerLevel, "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Info)
}
