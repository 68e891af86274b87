package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	minInflation = decimal.RequireFromString("-0.10")
	maxInflation = decimal.RequireFromString("0.20")
	minGrowth    = decimal.NewFromInt(-1)
	maxGrowth    = decimal.NewFromInt(1)
)

const (
	minWithdrawalAge = 59
	maxWithdrawalAge = 73
)

// Validate checks the scenario against the horizon in a. The first problem found is returned as a *ValidationError.
func (s *Scenario) Validate(a Assumptions) error {
	if s.CurrentYear < 1900 || s.CurrentYear > 2200 {
		return invalid("current_year", "must be between 1900 and 2200, got %d", s.CurrentYear)
	}
	if s.CurrentAge < 0 || s.CurrentAge > a.EndAge {
		return invalid("current_age", "must be between 0 and %d, got %d", a.EndAge, s.CurrentAge)
	}
	if s.TargetRetirementAge < 0 || s.TargetRetirementAge > 120 {
		return invalid("target_retirement_age", "must be between 0 and 120, got %d", s.TargetRetirementAge)
	}
	if s.RetirementWithdrawalAge < minWithdrawalAge || s.RetirementWithdrawalAge > maxWithdrawalAge {
		return invalid("retirement_withdrawal_age", "must be between %d and %d, got %d",
			minWithdrawalAge, maxWithdrawalAge, s.RetirementWithdrawalAge)
	}
	if s.GeneralInflation.LessThan(minInflation) || s.GeneralInflation.GreaterThan(maxInflation) {
		return invalid("general_inflation", "must be between -0.10 and 0.20 (a decimal, not a percentage), got %s",
			s.GeneralInflation.String())
	}
	switch s.TaxFilingStatus {
	case "", FilingStatusMarriedJoint, FilingStatusSingle:
	default:
		return invalid("tax_filing_status", "unrecognized status %q", s.TaxFilingStatus)
	}

	names := make(map[string]bool, len(s.Assets))
	for i, asset := range s.Assets {
		if err := validateAsset(fmt.Sprintf("assets[%d]", i), asset); err != nil {
			return err
		}
		names[asset.Name] = true
	}
	for i, st := range s.Inflows {
		if err := validateStream(fmt.Sprintf("inflows[%d]", i), st, true); err != nil {
			return err
		}
	}
	for i, st := range s.Outflows {
		if err := validateStream(fmt.Sprintf("outflows[%d]", i), st, false); err != nil {
			return err
		}
	}
	for i, oa := range s.OtherAssets {
		field := fmt.Sprintf("other_assets[%d]", i)
		if oa.Value.IsNegative() {
			return invalid(field+".value", "must not be negative")
		}
		if oa.Target != "" && !names[oa.Target] {
			return invalid(field+".target", "no asset named %q", oa.Target)
		}
		if oa.TaxTreatment != "" && !oa.TaxTreatment.Valid() {
			return invalid(field+".tax_treatment", "unrecognized tax treatment %q", oa.TaxTreatment)
		}
		if oa.GrowthRate != nil && !withinGrowthRange(*oa.GrowthRate) {
			return invalid(field+".growth_rate", "must be between -1 and 1")
		}
	}
	for i, exp := range s.OneTimeExpenses {
		if exp.Amount.IsNegative() {
			return invalid(fmt.Sprintf("one_time_expenses[%d].amount", i), "must not be negative")
		}
	}
	return nil
}

func validateAsset(field string, a AssetHolding) error {
	if a.Name == "" {
		return invalid(field+".name", "is required")
	}
	if !a.TaxTreatment.Valid() {
		return invalid(field+".tax_treatment", "unrecognized tax treatment %q", a.TaxTreatment)
	}
	if a.Balance.IsNegative() {
		return invalid(field+".value", "must not be negative")
	}
	if !withinGrowthRange(a.GrowthRate) {
		return invalid(field+".growth_rate", "must be between -1 and 1 (a decimal, not a percentage)")
	}
	if a.CostBasis != nil {
		if a.TaxTreatment != TaxTreatmentTaxable {
			return invalid(field+".cost_basis", "only applies to taxable holdings")
		}
		if a.CostBasis.IsNegative() {
			return invalid(field+".cost_basis", "must not be negative")
		}
	}
	return nil
}

func validateStream(field string, st Stream, income bool) error {
	if st.Name == "" {
		return invalid(field+".name", "is required")
	}
	if st.Amount.IsNegative() {
		return invalid(field+".amount", "must not be negative")
	}
	if st.EndYear < st.StartYear {
		return invalid(field+".end_year", "end_year %d is before start_year %d", st.EndYear, st.StartYear)
	}
	if st.GrowthRate != nil && !withinGrowthRange(*st.GrowthRate) {
		return invalid(field+".growth_rate", "must be between -1 and 1 (a decimal, not a percentage)")
	}
	if !st.Category.Valid() {
		return invalid(field+".category", "unrecognized category %q", st.Category)
	}
	if !income && st.Category != "" {
		return invalid(field+".category", "only applies to inflows")
	}
	return nil
}

func withinGrowthRange(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(minGrowth) && d.LessThanOrEqual(maxGrowth)
}

// Validate checks the ensemble parameters and then the embedded scenario.
func (r *MonteCarloRequest) Validate(a Assumptions) error {
	maxRuns := a.MonteCarlo.MaxRuns
	if maxRuns <= 0 {
		maxRuns = 1000
	}
	if r.NumRuns < 1 || r.NumRuns > maxRuns {
		return invalid("num_runs", "must be between 1 and %d, got %d", maxRuns, r.NumRuns)
	}
	vols := []struct {
		field string
		v     float64
	}{
		{"stock_volatility", r.StockVolatility},
		{"real_estate_volatility", r.RealEstateVolatility},
		{"inflation_volatility", r.InflationVolatility},
	}
	for _, vol := range vols {
		if math.IsNaN(vol.v) || math.IsInf(vol.v, 0) {
			return invalid(vol.field, "must be finite")
		}
		if vol.v < 0 {
			return invalid(vol.field, "must not be negative, got %g", vol.v)
		}
	}
	return r.Scenario.Validate(a)
}

// Validate checks the assumptions are internally consistent.
func (a Assumptions) Validate() error {
	if a.EndAge <= 0 || a.EndAge > 120 {
		return invalid("end_age", "must be between 1 and 120, got %d", a.EndAge)
	}
	unit := decimal.NewFromInt(1)
	rates := []struct {
		field string
		v     decimal.Decimal
	}{
		{"tax.ordinary_rate", a.Tax.OrdinaryRate},
		{"tax.capital_gains_rate", a.Tax.CapitalGainsRate},
		{"tax.default_gain_fraction", a.Tax.DefaultGainFraction},
		{"tax.dividend_yield", a.Tax.DividendYield},
		{"tax.flat_income_rate", a.Tax.FlatIncomeRate},
	}
	for _, r := range rates {
		if r.v.IsNegative() || r.v.GreaterThan(unit) {
			return invalid(r.field, "must be between 0 and 1, got %s", r.v.String())
		}
	}
	switch a.Tax.IncomeTaxMode {
	case IncomeTaxProgressive, IncomeTaxFlat:
	default:
		return invalid("tax.income_tax_mode", "unrecognized mode %q", a.Tax.IncomeTaxMode)
	}
	if len(a.Withdrawal.Order) != len(DefaultWithdrawalOrder) {
		return invalid("withdrawal.order", "must list each of brokerage, volatile, pre_tax, roth exactly once")
	}
	seen := make(map[WithdrawalSource]bool, len(a.Withdrawal.Order))
	for _, src := range a.Withdrawal.Order {
		switch src {
		case SourceBrokerage, SourceVolatile, SourcePreTax, SourceRoth:
		default:
			return invalid("withdrawal.order", "unrecognized source %q", src)
		}
		if seen[src] {
			return invalid("withdrawal.order", "source %q listed twice", src)
		}
		seen[src] = true
	}
	if a.Withdrawal.ShortfallTolerance.IsNegative() {
		return invalid("withdrawal.shortfall_tolerance", "must not be negative")
	}
	if a.MonteCarlo.MaxFailureRatio < 0 || a.MonteCarlo.MaxFailureRatio > 1 {
		return invalid("monte_carlo.max_failure_ratio", "must be between 0 and 1, got %g", a.MonteCarlo.MaxFailureRatio)
	}
	if a.MonteCarlo.MaxRuns < 0 || a.MonteCarlo.MaxRuns > 1000 {
		return invalid("monte_carlo.max_runs", "must be between 1 and 1000, got %d", a.MonteCarlo.MaxRuns)
	}
	if a.MonteCarlo.Workers < 0 {
		return invalid("monte_carlo.workers", "must not be negative, got %d", a.MonteCarlo.Workers)
	}
	return nil
}
