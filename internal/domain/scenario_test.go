package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestAssetHolding_IsVolatile(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		asset AssetHolding
		want  bool
	}{
		{AssetHolding{Name: "Bitcoin", TaxTreatment: TaxTreatmentTaxable}, true},
		{AssetHolding{Name: "My Crypto Wallet", TaxTreatment: TaxTreatmentTaxable}, true},
		{AssetHolding{Name: "Brokerage", TaxTreatment: TaxTreatmentTaxable}, false},
		{AssetHolding{Name: "Brokerage", TaxTreatment: TaxTreatmentTaxable, Volatile: &yes}, true},
		{AssetHolding{Name: "Bitcoin ETF", TaxTreatment: TaxTreatmentTaxable, Volatile: &no}, false},
		{AssetHolding{Name: "Bitcoin", TaxTreatment: TaxTreatmentRoth}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.asset.IsVolatile(), tt.asset.Name)
	}
}

func TestAssetHolding_IsPrimaryHome(t *testing.T) {
	no := false
	assert.True(t, AssetHolding{Name: "Primary Residence", TaxTreatment: TaxTreatmentRealEstate}.IsPrimaryHome())
	assert.False(t, AssetHolding{Name: "Rental Duplex", TaxTreatment: TaxTreatmentRealEstate}.IsPrimaryHome())
	assert.False(t, AssetHolding{Name: "Primary Residence", TaxTreatment: TaxTreatmentRealEstate, PrimaryHome: &no}.IsPrimaryHome())
	assert.False(t, AssetHolding{Name: "Primary Brokerage", TaxTreatment: TaxTreatmentTaxable}.IsPrimaryHome())
}

func TestStream_ResolvedCategory(t *testing.T) {
	tests := map[string]IncomeCategory{
		"W2 Salary":       IncomeSalary,
		"Annual Bonus":    IncomeSalary,
		"Rental Profit":   IncomeRental,
		"Book Royalties":  IncomeRoyalty,
		"Social Security": IncomeSocialSecurity,
		"Consulting":      IncomeOther,
	}
	for name, want := range tests {
		assert.Equal(t, want, Stream{Name: name}.ResolvedCategory(), name)
	}
	assert.Equal(t, IncomeRoyalty, Stream{Name: "Salary", Category: IncomeRoyalty}.ResolvedCategory())
	assert.True(t, IncomeRental.Passive())
	assert.False(t, IncomeSalary.Passive())
}

func TestScenario_CloneIsDeep(t *testing.T) {
	s := validScenario()
	s.Inflows[0].GrowthRate = dp("0.02")
	c := s.Clone()

	c.Assets[1].Balance = decimal.NewFromInt(1)
	*c.Assets[1].CostBasis = decimal.NewFromInt(1)
	*c.Inflows[0].GrowthRate = decimal.NewFromInt(1)
	c.OtherAssets[0].Target = "401k"

	assert.True(t, s.Assets[1].Balance.Equal(decimal.NewFromInt(50000)))
	assert.True(t, s.Assets[1].CostBasis.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, "0.02", s.Inflows[0].GrowthRate.String())
	assert.Equal(t, "Brokerage", s.OtherAssets[0].Target)
}

func TestScenario_Defaults(t *testing.T) {
	s := validScenario()
	assert.Equal(t, FilingStatusMarriedJoint, s.FilingStatusOrDefault())
	assert.Equal(t, 1985, s.BirthYear())

	assert.True(t, Stream{StartYear: 2025, EndYear: 2025}.ActiveIn(2025))
	assert.False(t, Stream{StartYear: 2025, EndYear: 2025}.ActiveIn(2026))
}

func TestScenario_YAMLDecimals(t *testing.T) {
	doc := `
current_year: 2025
general_inflation: 0.035
assets:
  - name: Roth
    value: 80000.50
    growth_rate: "0.055"
    tax_treatment: roth
`
	var s Scenario
	assert.NoError(t, yaml.Unmarshal([]byte(doc), &s))
	assert.Equal(t, "0.035", s.GeneralInflation.String())
	assert.Equal(t, "80000.5", s.Assets[0].Balance.String())
	assert.Equal(t, "0.055", s.Assets[0].GrowthRate.String())
}

func TestClassBalancesAndFlows(t *testing.T) {
	b := ClassBalances{PreTax: decimal.NewFromInt(1), Roth: decimal.NewFromInt(2), Brokerage: decimal.NewFromInt(3),
		Volatile: decimal.NewFromInt(4), RealEstate: decimal.NewFromInt(10), PrimaryHome: decimal.NewFromInt(20)}
	assert.True(t, b.Total().Equal(decimal.NewFromInt(40)))
	assert.True(t, b.Liquid().Equal(decimal.NewFromInt(10)))

	f := AfterTaxFlows{Salary: decimal.NewFromInt(100), Rental: decimal.NewFromInt(10), SocialSecurity: decimal.NewFromInt(5),
		OtherIncome: decimal.NewFromInt(1), RothWithdrawals: decimal.NewFromInt(7)}
	assert.True(t, f.Passive().Equal(decimal.NewFromInt(15)))
	assert.True(t, f.Income().Equal(decimal.NewFromInt(116)))
	assert.True(t, f.Total().Equal(decimal.NewFromInt(123)))
}
