package domain

import (
	"github.com/shopspring/decimal"
)

// MonteCarloRequest asks for an ensemble of shocked projections of one scenario.
type MonteCarloRequest struct {
	Scenario             `yaml:",inline"`
	NumRuns              int     `yaml:"num_runs" json:"num_runs"`
	StockVolatility      float64 `yaml:"stock_volatility" json:"stock_volatility"`
	RealEstateVolatility float64 `yaml:"real_estate_volatility" json:"real_estate_volatility"`
	InflationVolatility  float64 `yaml:"inflation_volatility" json:"inflation_volatility"`
	// Seed fixes the base seed; zero draws a fresh one.
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// PercentileRow is the cross-run distribution of nominal net worth at one age.
type PercentileRow struct {
	Age  int             `json:"age"`
	Year int             `json:"year"`
	P10  decimal.Decimal `json:"p10"`
	P25  decimal.Decimal `json:"p25"`
	P50  decimal.Decimal `json:"p50"`
	P75  decimal.Decimal `json:"p75"`
	P90  decimal.Decimal `json:"p90"`
	Mean decimal.Decimal `json:"mean"`
}

// StockReturnBoxRow is the box-and-whisker summary of sampled stock shocks at one age.
type StockReturnBoxRow struct {
	Age    int             `json:"age"`
	Year   int             `json:"year"`
	Min    decimal.Decimal `json:"min"`
	Q1     decimal.Decimal `json:"q1"`
	Median decimal.Decimal `json:"median"`
	Q3     decimal.Decimal `json:"q3"`
	Max    decimal.Decimal `json:"max"`
}

// MonteCarloResult aggregates an ensemble.
type MonteCarloResult struct {
	PercentileData     []PercentileRow     `json:"percentileData"`
	StockReturnBoxData []StockReturnBoxRow `json:"stockReturnBoxData"`
	SuccessRate        decimal.Decimal     `json:"successRate"`
	NumRuns            int                 `json:"numRuns"`
	ExcludedRuns       int                 `json:"excludedRuns"`
	Seed               int64               `json:"seed"`
}
