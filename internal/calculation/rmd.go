package calculation

import (
	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// IRS Uniform Lifetime Table distribution periods
var distributionPeriods = map[int]decimal.Decimal{
	72:  decimal.RequireFromString("27.4"),
	73:  decimal.RequireFromString("26.5"),
	74:  decimal.RequireFromString("25.5"),
	75:  decimal.RequireFromString("24.6"),
	76:  decimal.RequireFromString("23.7"),
	77:  decimal.RequireFromString("22.9"),
	78:  decimal.RequireFromString("22.0"),
	79:  decimal.RequireFromString("21.1"),
	80:  decimal.RequireFromString("20.2"),
	81:  decimal.RequireFromString("19.4"),
	82:  decimal.RequireFromString("18.5"),
	83:  decimal.RequireFromString("17.7"),
	84:  decimal.RequireFromString("16.8"),
	85:  decimal.RequireFromString("16.0"),
	86:  decimal.RequireFromString("15.2"),
	87:  decimal.RequireFromString("14.4"),
	88:  decimal.RequireFromString("13.7"),
	89:  decimal.RequireFromString("12.9"),
	90:  decimal.RequireFromString("12.2"),
	91:  decimal.RequireFromString("11.5"),
	92:  decimal.RequireFromString("10.8"),
	93:  decimal.RequireFromString("10.1"),
	94:  decimal.RequireFromString("9.5"),
	95:  decimal.RequireFromString("8.9"),
	96:  decimal.RequireFromString("8.4"),
	97:  decimal.RequireFromString("7.8"),
	98:  decimal.RequireFromString("7.3"),
	99:  decimal.RequireFromString("6.8"),
	100: decimal.RequireFromString("6.4"),
}

var beyondTablePeriod = decimal.RequireFromString("6.0")

// RMDCalculator calculates Required Minimum Distributions
type RMDCalculator struct {
	BirthYear int
}

// NewRMDCalculator creates a new RMD calculator
func NewRMDCalculator(birthYear int) *RMDCalculator {
	return &RMDCalculator{
		BirthYear: birthYear,
	}
}

// GetRMDAge returns the age when RMDs start for this birth year
func (rmd *RMDCalculator) GetRMDAge() int {
	return dateutil.GetRMDAge(rmd.BirthYear)
}

// CalculateRMD calculates the Required Minimum Distribution for a given age and pre-tax balance
func (rmd *RMDCalculator) CalculateRMD(preTaxBalance decimal.Decimal, age int) decimal.Decimal {
	if !dateutil.IsRMDYear(rmd.BirthYear, age) || !preTaxBalance.IsPositive() {
		return decimal.Zero
	}
	if period, exists := distributionPeriods[age]; exists {
		return preTaxBalance.Div(period)
	}
	if age > 100 {
		return preTaxBalance.Div(beyondTablePeriod)
	}
	return decimal.Zero
}
