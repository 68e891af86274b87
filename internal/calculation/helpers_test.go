package calculation

import (
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// testAssumptions uses flat income tax so expected values stay hand-checkable.
func testAssumptions() domain.Assumptions {
	a := domain.DefaultAssumptions()
	a.Tax.IncomeTaxMode = domain.IncomeTaxFlat
	a.Tax.FlatIncomeRate = decimal.Zero
	a.MonteCarlo.Workers = 4
	return a
}

// brokerageScenario is one 100000 brokerage holding at 5% and a 12000 expense in 2025-2026.
func brokerageScenario() *domain.Scenario {
	return &domain.Scenario{
		CurrentYear:             2025,
		CurrentAge:              93,
		TargetRetirementAge:     94,
		RetirementWithdrawalAge: 60,
		GeneralInflation:        decimal.Zero,
		Assets: []domain.AssetHolding{
			{Name: "Brokerage", Balance: d("100000"), GrowthRate: d("0.05"), TaxTreatment: domain.TaxTreatmentTaxable},
		},
		Outflows: []domain.Stream{
			{Name: "Living", Amount: d("12000"), StartYear: 2025, EndYear: 2026, GrowthRate: dp("0")},
		},
	}
}

// householdScenario is a mid-career household with every asset class represented.
func householdScenario() *domain.Scenario {
	return &domain.Scenario{
		CurrentYear:             2025,
		CurrentAge:              45,
		TargetRetirementAge:     60,
		RetirementWithdrawalAge: 60,
		GeneralInflation:        d("0.03"),
		Assets: []domain.AssetHolding{
			{Name: "401k", Balance: d("400000"), GrowthRate: d("0.06"), TaxTreatment: domain.TaxTreatmentPreTax},
			{Name: "Roth IRA", Balance: d("100000"), GrowthRate: d("0.06"), TaxTreatment: domain.TaxTreatmentRoth},
			{Name: "Brokerage", Balance: d("250000"), GrowthRate: d("0.06"), TaxTreatment: domain.TaxTreatmentTaxable, CostBasis: dp("150000")},
			{Name: "Bitcoin", Balance: d("50000"), GrowthRate: d("0.10"), TaxTreatment: domain.TaxTreatmentTaxable},
			{Name: "Rental Duplex", Balance: d("500000"), GrowthRate: d("0.03"), TaxTreatment: domain.TaxTreatmentRealEstate},
			{Name: "Primary Residence", Balance: d("600000"), GrowthRate: d("0.03"), TaxTreatment: domain.TaxTreatmentRealEstate},
		},
		Inflows: []domain.Stream{
			{Name: "W2 Salary", Amount: d("180000"), StartYear: 2025, EndYear: 2039, GrowthRate: dp("0.03")},
			{Name: "Rental Income", Amount: d("30000"), StartYear: 2025, EndYear: 2075},
			{Name: "Social Security", Amount: d("36000"), StartYear: 2047, EndYear: 2075},
		},
		Outflows: []domain.Stream{
			{Name: "Living Expenses", Amount: d("90000"), StartYear: 2025, EndYear: 2075},
			{Name: "Mortgage", Amount: d("30000"), StartYear: 2025, EndYear: 2040, GrowthRate: dp("0")},
		},
		OtherAssets: []domain.OneTimeAssetAddition{
			{Name: "Inheritance", Value: d("200000"), AddYear: 2035},
		},
		OneTimeExpenses: []domain.OneTimeExpense{
			{Name: "New Roof", Amount: d("25000"), Year: 2030},
		},
	}
}

// fixedShocks replays one shock vector for every year.
type fixedShocks struct {
	shocks YearShocks
}

func (f fixedShocks) Next() YearShocks { return f.shocks }

// countingShocks counts how often Next is called.
type countingShocks struct {
	calls int
}

func (c *countingShocks) Next() YearShocks {
	c.calls++
	return YearShocks{}
}
