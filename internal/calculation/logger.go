package calculation

import "fmt"

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// runLogger tags every line with the Monte Carlo run it came from.
type runLogger struct {
	next Logger
	run  int
}

func withRun(l Logger, run int) Logger {
	if l == nil {
		return NopLogger{}
	}
	if _, ok := l.(NopLogger); ok {
		return l
	}
	return runLogger{next: l, run: run}
}

func (r runLogger) tag(format string) string { return fmt.Sprintf("run %d: %s", r.run, format) }

func (r runLogger) Debugf(format string, args ...any) { r.next.Debugf(r.tag(format), args...) }
func (r runLogger) Infof(format string, args ...any)  { r.next.Infof(r.tag(format), args...) }
func (r runLogger) Warnf(format string, args ...any)  { r.next.Warnf(r.tag(format), args...) }
func (r runLogger) Errorf(format string, args ...any) { r.next.Errorf(r.tag(format), args...) }
