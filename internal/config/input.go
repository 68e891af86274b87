package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct {
	Assumptions domain.Assumptions
}

// NewInputParser creates a parser that validates against a
func NewInputParser(a domain.Assumptions) *InputParser {
	return &InputParser{Assumptions: a}
}

// LoadFromFile loads a scenario from a YAML (or JSON) file and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document.
func (ip *InputParser) ParseScenario(data []byte) (*domain.Scenario, error) {
	var scenario domain.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := scenario.Validate(ip.Assumptions); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// LoadMonteCarloRequest loads a scenario file that may also carry num_runs, volatilities and seed.
// Ensemble fields absent from the file keep their values from defaults; a key present with 0 stays 0.
// Ensemble fields are validated by the engine once command-line overrides are applied.
func (ip *InputParser) LoadMonteCarloRequest(filename string, defaults domain.MonteCarloRequest) (*domain.MonteCarloRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	req := domain.MonteCarloRequest{
		NumRuns:              defaults.NumRuns,
		StockVolatility:      defaults.StockVolatility,
		RealEstateVolatility: defaults.RealEstateVolatility,
		InflationVolatility:  defaults.InflationVolatility,
		Seed:                 defaults.Seed,
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := req.Scenario.Validate(ip.Assumptions); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &req, nil
}

// WriteScenario encodes s as YAML.
func WriteScenario(w io.Writer, s *domain.Scenario) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func rate(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// CreateExampleScenario creates the sample household used by the example command
func CreateExampleScenario() *domain.Scenario {
	return &domain.Scenario{
		CurrentYear:             2025,
		CurrentAge:              38,
		TargetRetirementAge:     48,
		RetirementWithdrawalAge: 60,
		GeneralInflation:        decimal.RequireFromString("0.035"),
		TaxFilingStatus:         domain.FilingStatusMarriedJoint,
		Assets: []domain.AssetHolding{
			{Name: "401k", Balance: decimal.NewFromInt(1200000), GrowthRate: decimal.RequireFromString("0.055"), TaxTreatment: domain.TaxTreatmentPreTax},
			{Name: "Roth IRA", Balance: decimal.NewFromInt(80000), GrowthRate: decimal.RequireFromString("0.055"), TaxTreatment: domain.TaxTreatmentRoth},
			{Name: "Brokerage (Stocks)", Balance: decimal.NewFromInt(250000), GrowthRate: decimal.RequireFromString("0.055"), TaxTreatment: domain.TaxTreatmentTaxable},
			{Name: "Bitcoin", Balance: decimal.NewFromInt(135000), GrowthRate: decimal.RequireFromString("0.07"), TaxTreatment: domain.TaxTreatmentTaxable},
			{Name: "Rental Portfolio", Balance: decimal.NewFromInt(2060000), GrowthRate: decimal.RequireFromString("0.02"), TaxTreatment: domain.TaxTreatmentRealEstate},
			{Name: "Primary Home", Balance: decimal.NewFromInt(750000), GrowthRate: decimal.RequireFromString("0.02"), TaxTreatment: domain.TaxTreatmentRealEstate},
		},
		Inflows: []domain.Stream{
			{Name: "W2 Salary", Amount: decimal.NewFromInt(400000), StartYear: 2025, EndYear: 2035, GrowthRate: rate("0.035")},
			{Name: "Rental Profit", Amount: decimal.NewFromInt(60000), StartYear: 2032, EndYear: 2090, GrowthRate: rate("0.02")},
			{Name: "Royalties", Amount: decimal.NewFromInt(36000), StartYear: 2030, EndYear: 2050, GrowthRate: rate("0")},
			{Name: "Social Security", Amount: decimal.NewFromInt(34000), StartYear: 2054, EndYear: 2090, GrowthRate: rate("0.025")},
		},
		Outflows: []domain.Stream{
			{Name: "Living Expenses 1", Amount: decimal.NewFromInt(175000), StartYear: 2025, EndYear: 2035, GrowthRate: rate("0.04")},
			{Name: "Living Expenses 2", Amount: decimal.NewFromInt(125000), StartYear: 2036, EndYear: 2090, GrowthRate: rate("0.04")},
			{Name: "Housing (Tax/Ins)", Amount: decimal.NewFromInt(25000), StartYear: 2025, EndYear: 2090, GrowthRate: rate("0.04")},
			{Name: "Car Expenses", Amount: decimal.NewFromInt(10000), StartYear: 2025, EndYear: 2080, GrowthRate: rate("0.04")},
			{Name: "Health Insurance (Gap)", Amount: decimal.NewFromInt(20000), StartYear: 2035, EndYear: 2052, GrowthRate: rate("0.04")},
		},
		OtherAssets: []domain.OneTimeAssetAddition{
			{Name: "Other Asset 1", Value: decimal.NewFromInt(500000), AddYear: 2030},
		},
		OneTimeExpenses: []domain.OneTimeExpense{
			{Name: "Kitchen Remodel", Amount: decimal.NewFromInt(60000), Year: 2030, AddToPrimaryHome: true},
		},
	}
}
