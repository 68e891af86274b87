package domain

import (
	"github.com/shopspring/decimal"
)

// WithdrawalSource is one tier of the withdrawal waterfall.
type WithdrawalSource string

const (
	SourceBrokerage WithdrawalSource = "brokerage"
	SourceVolatile  WithdrawalSource = "volatile"
	SourcePreTax    WithdrawalSource = "pre_tax"
	SourceRoth      WithdrawalSource = "roth"
)

// DefaultWithdrawalOrder draws taxable money first and Roth last.
var DefaultWithdrawalOrder = []WithdrawalSource{SourceBrokerage, SourceVolatile, SourcePreTax, SourceRoth}

// IncomeTaxMode selects how recurring income is taxed.
type IncomeTaxMode string

const (
	IncomeTaxProgressive IncomeTaxMode = "progressive"
	IncomeTaxFlat        IncomeTaxMode = "flat"
)

// TaxBracket is one marginal band; Max is nil for the top band.
type TaxBracket struct {
	Max  *decimal.Decimal `json:"max,omitempty"`
	Rate decimal.Decimal  `json:"rate"`
}

// BracketTable is a base-year schedule indexed forward by general inflation.
type BracketTable struct {
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	Brackets          []TaxBracket    `json:"brackets"`
}

// TaxAssumptions are the flat-rate approximations used by withdrawals plus the income tax schedule.
type TaxAssumptions struct {
	OrdinaryRate        decimal.Decimal               `json:"ordinary_rate"`
	CapitalGainsRate    decimal.Decimal               `json:"capital_gains_rate"`
	DefaultGainFraction decimal.Decimal               `json:"default_gain_fraction"`
	DividendYield       decimal.Decimal               `json:"dividend_yield"`
	IncomeTaxMode       IncomeTaxMode                 `json:"income_tax_mode"`
	FlatIncomeRate      decimal.Decimal               `json:"flat_income_rate"`
	Tables              map[FilingStatus]BracketTable `json:"tables"`
}

// WithdrawalPolicy controls how shortfalls and surpluses move money between holdings.
type WithdrawalPolicy struct {
	Order              []WithdrawalSource `json:"order"`
	ShortfallTolerance decimal.Decimal    `json:"shortfall_tolerance"`
	EnforceRMD         bool               `json:"enforce_rmd"`
	ReinvestSurplus    bool               `json:"reinvest_surplus"`
}

// MonteCarloLimits bound ensemble requests.
type MonteCarloLimits struct {
	MaxRuns         int     `json:"max_runs"`
	MaxFailureRatio float64 `json:"max_failure_ratio"`
	Workers         int     `json:"workers"`
}

// Assumptions are engine-wide settings that are not part of a household's scenario.
type Assumptions struct {
	EndAge        int              `json:"end_age"`
	MilestoneAges []int            `json:"milestone_ages"`
	Tax           TaxAssumptions   `json:"tax"`
	Withdrawal    WithdrawalPolicy `json:"withdrawal"`
	MonteCarlo    MonteCarloLimits `json:"monte_carlo"`
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultBracketTables returns the base-year federal schedules.
func DefaultBracketTables() map[FilingStatus]BracketTable {
	return map[FilingStatus]BracketTable{
		FilingStatusMarriedJoint: {
			StandardDeduction: decimal.NewFromInt(29200),
			Brackets: []TaxBracket{
				{Max: bound(23200), Rate: decimal.RequireFromString("0.10")},
				{Max: bound(94300), Rate: decimal.RequireFromString("0.12")},
				{Max: bound(201050), Rate: decimal.RequireFromString("0.22")},
				{Max: bound(383900), Rate: decimal.RequireFromString("0.24")},
				{Max: bound(487450), Rate: decimal.RequireFromString("0.32")},
				{Max: bound(731200), Rate: decimal.RequireFromString("0.35")},
				{Rate: decimal.RequireFromString("0.37")},
			},
		},
		FilingStatusSingle: {
			StandardDeduction: decimal.NewFromInt(14600),
			Brackets: []TaxBracket{
				{Max: bound(11600), Rate: decimal.RequireFromString("0.10")},
				{Max: bound(47150), Rate: decimal.RequireFromString("0.12")},
				{Max: bound(100525), Rate: decimal.RequireFromString("0.22")},
				{Max: bound(191950), Rate: decimal.RequireFromString("0.24")},
				{Max: bound(243725), Rate: decimal.RequireFromString("0.32")},
				{Max: bound(609350), Rate: decimal.RequireFromString("0.35")},
				{Rate: decimal.RequireFromString("0.37")},
			},
		},
	}
}

// DefaultAssumptions returns the settings used when nothing is configured.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		EndAge:        95,
		MilestoneAges: []int{70, 80, 90},
		Tax: TaxAssumptions{
			OrdinaryRate:        decimal.RequireFromString("0.25"),
			CapitalGainsRate:    decimal.RequireFromString("0.15"),
			DefaultGainFraction: decimal.NewFromInt(1),
			DividendYield:       decimal.Zero,
			IncomeTaxMode:       IncomeTaxProgressive,
			FlatIncomeRate:      decimal.RequireFromString("0.22"),
			Tables:              DefaultBracketTables(),
		},
		Withdrawal: WithdrawalPolicy{
			Order:              append([]WithdrawalSource(nil), DefaultWithdrawalOrder...),
			ShortfallTolerance: decimal.NewFromInt(1),
		},
		MonteCarlo: MonteCarloLimits{
			MaxRuns:         1000,
			MaxFailureRatio: 0.05,
		},
	}
}
