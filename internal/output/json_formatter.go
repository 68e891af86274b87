package output

import (
	"encoding/json"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }
func (j JSONFormatter) Ext() string  { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || (r.Simulation == nil && r.MonteCarlo == nil) {
		return nil, ErrMissingResult
	}
	return json.MarshalIndent(r, "", "  ")
}
