package domain

import (
	"github.com/shopspring/decimal"
)

// ClassBalances are end-of-year nominal balances rolled up by asset class
type ClassBalances struct {
	PreTax      decimal.Decimal `json:"pre_tax"`
	Roth        decimal.Decimal `json:"roth"`
	Brokerage   decimal.Decimal `json:"brokerage"`
	Volatile    decimal.Decimal `json:"volatile"`
	RealEstate  decimal.Decimal `json:"real_estate"`
	PrimaryHome decimal.Decimal `json:"primary_home"`
}

// Total sums every class.
func (b ClassBalances) Total() decimal.Decimal {
	return b.PreTax.Add(b.Roth).Add(b.Brokerage).Add(b.Volatile).Add(b.RealEstate).Add(b.PrimaryHome)
}

// Liquid sums the classes the withdrawal waterfall may draw from.
func (b ClassBalances) Liquid() decimal.Decimal {
	return b.PreTax.Add(b.Roth).Add(b.Brokerage).Add(b.Volatile)
}

// AfterTaxFlows attributes a year's after-tax cash by source
type AfterTaxFlows struct {
	Salary               decimal.Decimal `json:"salary"`
	Rental               decimal.Decimal `json:"rental"`
	Royalty              decimal.Decimal `json:"royalty"`
	Dividends            decimal.Decimal `json:"dividends"`
	SocialSecurity       decimal.Decimal `json:"social_security"`
	OtherIncome          decimal.Decimal `json:"other_income"`
	PreTaxWithdrawals    decimal.Decimal `json:"pre_tax_withdrawals"`
	BrokerageWithdrawals decimal.Decimal `json:"brokerage_withdrawals"`
	VolatileWithdrawals  decimal.Decimal `json:"volatile_withdrawals"`
	RothWithdrawals      decimal.Decimal `json:"roth_withdrawals"`
}

// Passive is the after-tax income that arrives without labor or drawdown.
func (f AfterTaxFlows) Passive() decimal.Decimal {
	return f.Rental.Add(f.Royalty).Add(f.Dividends).Add(f.SocialSecurity)
}

// Income is after-tax income before any withdrawal.
func (f AfterTaxFlows) Income() decimal.Decimal {
	return f.Salary.Add(f.Passive()).Add(f.OtherIncome)
}

// Withdrawals is the after-tax cash raised from assets.
func (f AfterTaxFlows) Withdrawals() decimal.Decimal {
	return f.PreTaxWithdrawals.Add(f.BrokerageWithdrawals).Add(f.VolatileWithdrawals).Add(f.RothWithdrawals)
}

// Total is all after-tax cash available for the year.
func (f AfterTaxFlows) Total() decimal.Decimal {
	return f.Income().Add(f.Withdrawals())
}

// YearRecord is one row of a projection timeline
type YearRecord struct {
	Year            int             `json:"year"`
	Age             int             `json:"age"`
	Balances        ClassBalances   `json:"balances"`
	NominalNetWorth decimal.Decimal `json:"nominal_net_worth"`
	RealNetWorth    decimal.Decimal `json:"real_net_worth"`
	AfterTax        AfterTaxFlows   `json:"after_tax"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	UnmetShortfall  decimal.Decimal `json:"unmet_shortfall"`
	Depleted        bool            `json:"depleted"`
}

// NetWorthPoint captures net worth at a specific age.
type NetWorthPoint struct {
	Age     int             `json:"age"`
	Year    int             `json:"year"`
	Nominal decimal.Decimal `json:"nominal"`
	Real    decimal.Decimal `json:"real"`
}

// Metrics summarises a timeline at retirement and at milestone ages.
type Metrics struct {
	Retirement *NetWorthPoint  `json:"retirement"`
	Milestones []NetWorthPoint `json:"milestones"`
}

// Milestone returns the point recorded for age, if any.
func (m Metrics) Milestone(age int) (NetWorthPoint, bool) {
	for _, p := range m.Milestones {
		if p.Age == age {
			return p, true
		}
	}
	return NetWorthPoint{}, false
}

// SimulationResult is the output of a deterministic projection.
type SimulationResult struct {
	Timeline    []YearRecord `json:"timeline"`
	Metrics     Metrics      `json:"metrics"`
	FreedomYear *int         `json:"freedom_year"`
}

// Depleted reports whether any year of the timeline ran out of liquid assets.
func (r *SimulationResult) Depleted() bool {
	for _, rec := range r.Timeline {
		if rec.Depleted {
			return true
		}
	}
	return false
}
