package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rpgo/networth-projector/internal/domain"
)

// MonteCarloCSVExporter writes the per-age percentile band joined with the stock shock box plot.
type MonteCarloCSVExporter struct{}

func (m MonteCarloCSVExporter) Name() string { return "montecarlo-csv" }
func (m MonteCarloCSVExporter) Ext() string  { return "csv" }

func (m MonteCarloCSVExporter) Format(r *Report) ([]byte, error) {
	if r == nil || r.MonteCarlo == nil {
		return nil, ErrMissingResult
	}
	res := r.MonteCarlo
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Age", "Year", "P10", "P25", "P50", "P75", "P90", "Mean",
		"StockMin", "StockQ1", "StockMedian", "StockQ3", "StockMax",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, p := range res.PercentileData {
		row := []string{
			intToString(p.Age), intToString(p.Year),
			money(p.P10), money(p.P25), money(p.P50), money(p.P75), money(p.P90), money(p.Mean),
		}
		if i < len(res.StockReturnBoxData) {
			box := res.StockReturnBoxData[i]
			row = append(row, box.Min.String(), box.Q1.String(), box.Median.String(), box.Q3.String(), box.Max.String())
		} else {
			row = append(row, "", "", "", "", "")
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write percentile row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SummaryRows are the aggregate metrics of an ensemble as metric/value/description triples.
func SummaryRows(res *domain.MonteCarloResult) [][]string {
	return [][]string{
		{"Success Rate", FormatPercentage(res.SuccessRate), "Share of included runs that never depleted liquid assets"},
		{"Number of Simulations", strconv.Itoa(res.NumRuns), "Total number of runs requested"},
		{"Excluded Runs", strconv.Itoa(res.ExcludedRuns), "Runs dropped after a numeric failure"},
		{"Seed", strconv.FormatInt(res.Seed, 10), "Base seed; run r uses seed+r"},
	}
}

// WriteMonteCarloCSVs writes monte_carlo_summary.csv and monte_carlo_percentiles.csv into outputDir.
func WriteMonteCarloCSVs(res *domain.MonteCarloResult, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &bytes.Buffer{}
	w := csv.NewWriter(summary)
	if err := w.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(SummaryRows(res)); err != nil {
		return fmt.Errorf("failed to write data row: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "monte_carlo_summary.csv"), summary.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to generate summary CSV: %w", err)
	}

	percentiles, err := MonteCarloCSVExporter{}.Format(&Report{MonteCarlo: res})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "monte_carlo_percentiles.csv"), percentiles, 0o644); err != nil {
		return fmt.Errorf("failed to generate percentile CSV: %w", err)
	}
	return nil
}
