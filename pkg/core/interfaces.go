package core

// Logger is the leveled logging interface the builder reports progress and
// diagnostics through. Implementations wrap a concrete backend (see
// pkg/mbvhlog for the default github.com/op/go-logging-backed one).
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NopLogger discards everything. Used when a caller passes a nil Logger.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{}) {}
func (NopLogger) Infof(format string, args ...interface{})  {}
func (NopLogger) Warnf(format string, args ...interface{})  {}
