// Package logging builds the process logger and bridges it to the calculation engine.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a timestamped zerolog logger writing to w at the given level.
// format is "console" for human output or "json" for one object per line.
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (use %s or %s)", format, FormatConsole, FormatJSON)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Adapter satisfies the engine's printf-style Logger on top of zerolog.
type Adapter struct {
	logger zerolog.Logger
}

func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger.With().Str("component", "engine").Logger()}
}

func (a *Adapter) Debugf(format string, args ...any) { a.logger.Debug().Msgf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.logger.Info().Msgf(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.logger.Warn().Msgf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.logger.Error().Msgf(format, args...) }
