package calculation

import (
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Recurring income (salary, rental, royalty, dividends, Social Security, other)
//    is taxed together. In progressive mode the base-year federal brackets and
//    standard deduction are indexed by (1+general_inflation)^years; the resulting
//    effective rate is applied uniformly to every income category.
//
// 2. Asset withdrawals use flat approximations:
//    - pre_tax: ordinary rate
//    - taxable: capital gains rate x gain fraction
//    - roth: untaxed
//
// 3. No state, local, payroll or early-withdrawal penalties. Social Security is
//    fully included in taxable income.

// IncomeTaxCalculator computes tax on a year's recurring income
type IncomeTaxCalculator struct {
	Mode     domain.IncomeTaxMode
	FlatRate decimal.Decimal
	Table    domain.BracketTable
}

// NewIncomeTaxCalculator selects the bracket table for the filing status
func NewIncomeTaxCalculator(tax domain.TaxAssumptions, status domain.FilingStatus) *IncomeTaxCalculator {
	table, ok := tax.Tables[status]
	if !ok {
		table = domain.DefaultBracketTables()[status]
	}
	return &IncomeTaxCalculator{Mode: tax.IncomeTaxMode, FlatRate: tax.FlatIncomeRate, Table: table}
}

// CalculateTax returns the tax owed on grossIncome. index is the cumulative inflation
// factor since the base year, applied to the deduction and every bracket limit.
func (c *IncomeTaxCalculator) CalculateTax(grossIncome, index decimal.Decimal) decimal.Decimal {
	if !grossIncome.IsPositive() {
		return decimal.Zero
	}
	if c.Mode == domain.IncomeTaxFlat {
		return grossIncome.Mul(c.FlatRate)
	}

	taxableIncome := grossIncome.Sub(c.Table.StandardDeduction.Mul(index))
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	lower := decimal.Zero
	for _, bracket := range c.Table.Brackets {
		if taxableIncome.LessThanOrEqual(lower) {
			break
		}
		if bracket.Max == nil {
			totalTax = totalTax.Add(taxableIncome.Sub(lower).Mul(bracket.Rate))
			break
		}
		upper := bracket.Max.Mul(index)
		incomeInBracket := decimal.Min(taxableIncome, upper).Sub(lower)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
		lower = upper
	}
	return totalTax
}

// EffectiveRate is tax divided by gross income, zero when there is no income
func (c *IncomeTaxCalculator) EffectiveRate(grossIncome, index decimal.Decimal) decimal.Decimal {
	if !grossIncome.IsPositive() {
		return decimal.Zero
	}
	return c.CalculateTax(grossIncome, index).Div(grossIncome)
}
