package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestReport() *Report {
	freedom := 2026
	scenario := &domain.Scenario{CurrentYear: 2025, CurrentAge: 60, GeneralInflation: d("0.03")}
	sim := &domain.SimulationResult{
		Timeline: []domain.YearRecord{
			{
				Year:            2025,
				Age:             60,
				Balances:        domain.ClassBalances{Brokerage: d("100000"), PreTax: d("50000")},
				NominalNetWorth: d("150000"),
				RealNetWorth:    d("150000"),
				AfterTax:        domain.AfterTaxFlows{Salary: d("40000"), BrokerageWithdrawals: d("5000")},
				TotalExpenses:   d("45000"),
			},
			{
				Year:            2026,
				Age:             61,
				Balances:        domain.ClassBalances{Brokerage: d("90000"), PreTax: d("52000"), RealEstate: d("250000")},
				NominalNetWorth: d("392000"),
				RealNetWorth:    d("380582.52"),
				AfterTax:        domain.AfterTaxFlows{Rental: d("50000")},
				TotalExpenses:   d("46000"),
				UnmetShortfall:  d("1500"),
				Depleted:        true,
			},
		},
		Metrics: domain.Metrics{
			Retirement: &domain.NetWorthPoint{Age: 61, Year: 2026, Nominal: d("392000"), Real: d("380582.52")},
		},
		FreedomYear: &freedom,
	}
	mc := &domain.MonteCarloResult{
		PercentileData: []domain.PercentileRow{
			{Age: 60, Year: 2025, P10: d("90000"), P25: d("120000"), P50: d("150000"), P75: d("180000"), P90: d("210000"), Mean: d("150000")},
			{Age: 61, Year: 2026, P10: d("80000"), P25: d("110000"), P50: d("140000"), P75: d("170000"), P90: d("200000"), Mean: d("141000")},
		},
		StockReturnBoxData: []domain.StockReturnBoxRow{
			{Age: 60, Year: 2025, Min: d("-0.2"), Q1: d("-0.05"), Median: d("0.01"), Q3: d("0.07"), Max: d("0.25")},
			{Age: 61, Year: 2026, Min: d("-0.3"), Q1: d("-0.04"), Median: d("0"), Q3: d("0.06"), Max: d("0.2")},
		},
		SuccessRate:  d("87.5"),
		NumRuns:      200,
		ExcludedRuns: 1,
		Seed:         42,
	}
	return &Report{Scenario: scenario, Simulation: sim, MonteCarlo: mc}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "NET WORTH PROJECTION")
	assert.Contains(t, content, "Financial freedom")
	assert.Contains(t, content, "2026")
	assert.Contains(t, content, "depleted in 2026 (age 61)")
	assert.Contains(t, content, "$392,000")
	assert.Contains(t, content, "Liquid")
	assert.Contains(t, content, "$142,000", "liquid assets exclude real estate")
	assert.Contains(t, content, "MONTE CARLO SIMULATION")
	assert.Contains(t, content, "87.50%")
	assert.Contains(t, content, "200 (1 excluded)")
}

func TestConsoleFormatter_MonteCarloOnly(t *testing.T) {
	r := buildTestReport()
	r.Simulation = nil
	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "NET WORTH PROJECTION")
	assert.Contains(t, string(out), "P50")
}

func TestCSVTimelineExporter(t *testing.T) {
	out, err := CSVTimelineExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, len(records[0]), len(records[1]))
	assert.Equal(t, "2025", records[1][0])
	assert.Equal(t, "150000.00", records[1][2])
	assert.Equal(t, "1500.00", records[2][len(records[2])-2])
	assert.Equal(t, "true", records[2][len(records[2])-1])
}

func TestMonteCarloCSVExporter(t *testing.T) {
	out, err := MonteCarloCSVExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"60", "2025", "90000.00", "120000.00", "150000.00", "180000.00", "210000.00", "150000.00", "-0.2", "-0.05", "0.01", "0.07", "0.25"}, records[1])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "scenario")
	assert.Contains(t, decoded, "simulation")
	assert.Contains(t, decoded, "monte_carlo")
}

func TestFormatters_MissingResult(t *testing.T) {
	empty := &Report{}
	for _, f := range builtInFormatters {
		_, err := f.Format(empty)
		assert.True(t, errors.Is(err, ErrMissingResult), "%s", f.Name())
	}

	simOnly := buildTestReport()
	simOnly.MonteCarlo = nil
	_, err := MonteCarloCSVExporter{}.Format(simOnly)
	assert.ErrorIs(t, err, ErrMissingResult)
}

func TestCSVTimelineExporter_FallsBackToPercentiles(t *testing.T) {
	r := buildTestReport()
	r.Simulation = nil

	got, err := CSVTimelineExporter{}.Format(r)
	require.NoError(t, err)
	want, err := MonteCarloCSVExporter{}.Format(r)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestFormatterAliasResolution(t *testing.T) {
	tests := map[string]string{
		"console":        "console",
		" TABLE ":        "console",
		"timeline":       "csv",
		"mc-csv":         "montecarlo-csv",
		"percentile-csv": "montecarlo-csv",
		"json-pretty":    "json",
	}
	for in, want := range tests {
		f, err := GetFormatterByName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f.Name(), in)
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GetFormatterByName("definitely-not-a-format")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "Try one of:")
	assert.Contains(t, err.Error(), "montecarlo-csv")
}

func TestWriteFormatted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	name, err := WriteFormatted(CSVTimelineExporter{}, buildTestReport(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(name))
	assert.True(t, strings.HasPrefix(filepath.Base(name), "networth_csv_"))
	assert.Equal(t, ".csv", filepath.Ext(name))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Year,Age,"))
}

func TestWriteMonteCarloCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteMonteCarloCSVs(buildTestReport().MonteCarlo, dir))

	summary, err := os.ReadFile(filepath.Join(dir, "monte_carlo_summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Success Rate,87.50%")
	assert.FileExists(t, filepath.Join(dir, "monte_carlo_percentiles.csv"))
}
