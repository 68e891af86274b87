package domain

import "fmt"

// ValidationError reports malformed or out-of-range input. Field is a path such as "assets[2].tax_treatment".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SimulationError is an internal invariant violation that aborts a single run.
type SimulationError struct {
	Run     int
	Year    int
	Message string
}

func (e *SimulationError) Error() string {
	if e.Run > 0 {
		return fmt.Sprintf("run %d, year %d: %s", e.Run, e.Year, e.Message)
	}
	return fmt.Sprintf("year %d: %s", e.Year, e.Message)
}
