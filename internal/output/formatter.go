package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned when no formatter is registered under a name.
	ErrUnsupportedFormat = errors.New("unsupported report format")
	// ErrMissingResult is returned when a formatter needs a result the report does not carry.
	ErrMissingResult = errors.New("report has no result for this format")
)

// Report bundles whatever a command produced. Either result may be nil.
type Report struct {
	Scenario   *domain.Scenario         `json:"scenario,omitempty"`
	Simulation *domain.SimulationResult `json:"simulation,omitempty"`
	MonteCarlo *domain.MonteCarloResult `json:"monte_carlo,omitempty"`
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(r *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Ext is the file extension used when the output is written to disk.
	Ext() string
}

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, r *Report, dir string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("networth_%s_%s.%s", f.Name(), time.Now().Format("20060102_150405"), f.Ext()))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVTimelineExporter{},
	MonteCarloCSVExporter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter by name or alias.
func GetFormatterByName(name string) (Formatter, error) {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

var aliasMap = map[string]string{
	"text":           "console",
	"table":          "console",
	"timeline":       "csv",
	"csv-timeline":   "csv",
	"mc-csv":         "montecarlo-csv",
	"percentile-csv": "montecarlo-csv",
	"json-pretty":    "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
