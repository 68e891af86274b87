package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	_, err := execute(t, "example", "-o", path)
	require.NoError(t, err)
	return path
}

func TestExampleToStdout(t *testing.T) {
	out, err := execute(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "current_year: 2025")
	assert.Contains(t, out, "Kitchen Remodel")
}

func TestSimulateCSV(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "simulate", path, "-f", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Year,Age,NominalNetWorth"))
	// ages 38 through 95
	assert.Len(t, lines, 1+95-38+1)
}

func TestSimulateUnknownFormat(t *testing.T) {
	path := writeExample(t)
	_, err := execute(t, "simulate", path, "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestSimulateMissingFile(t *testing.T) {
	_, err := execute(t, "simulate", "nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestMonteCarloJSON(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "montecarlo", path, "--runs", "20", "--seed", "7", "-f", "json")
	require.NoError(t, err)

	var decoded struct {
		MonteCarlo struct {
			NumRuns        int               `json:"numRuns"`
			Seed           int64             `json:"seed"`
			PercentileData []json.RawMessage `json:"percentileData"`
		} `json:"monte_carlo"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 20, decoded.MonteCarlo.NumRuns)
	assert.Equal(t, int64(7), decoded.MonteCarlo.Seed)
	assert.Len(t, decoded.MonteCarlo.PercentileData, 95-38+1)
}

func TestMonteCarloKeepsZeroVolatilityFromFile(t *testing.T) {
	path := writeExample(t)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("stock_volatility: 0\nreal_estate_volatility: 0\ninflation_volatility: 0\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := execute(t, "montecarlo", path, "--runs", "5", "--seed", "3", "-f", "json")
	require.NoError(t, err)

	var decoded struct {
		MonteCarlo struct {
			PercentileData []struct {
				P10 json.RawMessage `json:"p10"`
				P90 json.RawMessage `json:"p90"`
			} `json:"percentileData"`
		} `json:"monte_carlo"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.NotEmpty(t, decoded.MonteCarlo.PercentileData)
	for _, row := range decoded.MonteCarlo.PercentileData {
		assert.JSONEq(t, string(row.P10), string(row.P90), "every run is the deterministic path")
	}
}

func TestMonteCarloRejectsTooManyRuns(t *testing.T) {
	path := writeExample(t)
	_, err := execute(t, "mc", path, "--runs", "5000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "num_runs")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "networth dev\n", out)
}
