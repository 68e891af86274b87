package calculation

import (
	"github.com/rpgo/networth-projector/internal/domain"
	dec "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// scheduledStream caches the nominal amount of an explicit-growth stream for every
// horizon year. Inflation-linked streams leave amounts nil and scale by the run's index.
type scheduledStream struct {
	stream   domain.Stream
	category domain.IncomeCategory
	amounts  []decimal.Decimal
}

func scheduleStreams(streams []domain.Stream, startYear, years int, income bool) []scheduledStream {
	out := make([]scheduledStream, len(streams))
	for i, s := range streams {
		out[i] = scheduledStream{stream: s}
		if income {
			out[i].category = s.ResolvedCategory()
		}
		if s.InflationLinked() {
			continue
		}
		out[i].amounts = make([]decimal.Decimal, years)
		factor := one
		step := one.Add(*s.GrowthRate)
		for t := 0; t < years; t++ {
			if s.ActiveIn(startYear + t) {
				out[i].amounts[t] = dec.RoundBalance(s.Amount.Mul(factor))
			}
			factor = factor.Mul(step)
		}
	}
	return out
}

// amount returns the stream's nominal amount in horizon year t.
func (s scheduledStream) amount(year, t int, inflationIndex decimal.Decimal) decimal.Decimal {
	if !s.stream.ActiveIn(year) {
		return decimal.Zero
	}
	if s.amounts != nil {
		return s.amounts[t]
	}
	return dec.RoundBalance(s.stream.Amount.Mul(inflationIndex))
}

// CashFlow is one year's resolved income and spending before any withdrawal.
type CashFlow struct {
	Year               int
	GrossIncome        decimal.Decimal
	GrossDividends     decimal.Decimal
	IncomeTax          decimal.Decimal
	EffectiveTaxRate   decimal.Decimal
	AfterTax           domain.AfterTaxFlows
	TotalExpenses      decimal.Decimal
	PrimaryHomeCredits decimal.Decimal
}

// CashFlowResolver turns scheduled streams and one-time expenses into yearly totals.
// It is immutable after construction and may be shared by concurrent runs.
type CashFlowResolver struct {
	startYear     int
	inflows       []scheduledStream
	outflows      []scheduledStream
	oneTime       []domain.OneTimeExpense
	taxCalc       *IncomeTaxCalculator
	dividendYield decimal.Decimal
}

// NewCashFlowResolver precomputes explicit-growth stream amounts over years horizon years.
func NewCashFlowResolver(s *domain.Scenario, tax domain.TaxAssumptions, years int) *CashFlowResolver {
	return &CashFlowResolver{
		startYear:     s.CurrentYear,
		inflows:       scheduleStreams(s.Inflows, s.CurrentYear, years, true),
		outflows:      scheduleStreams(s.Outflows, s.CurrentYear, years, false),
		oneTime:       s.OneTimeExpenses,
		taxCalc:       NewIncomeTaxCalculator(tax, s.FilingStatusOrDefault()),
		dividendYield: tax.DividendYield,
	}
}

// Resolve computes horizon year t. inflationIndex is the run's realized cumulative inflation
// (drives inflation-linked streams), taxIndex the general-inflation factor for brackets, and
// dividendBase the brokerage balance the dividend estimate is paid on.
func (r *CashFlowResolver) Resolve(t int, inflationIndex, taxIndex, dividendBase decimal.Decimal) CashFlow {
	year := r.startYear + t
	cf := CashFlow{Year: year}

	gross := make(map[domain.IncomeCategory]decimal.Decimal, 5)
	for _, s := range r.inflows {
		amt := s.amount(year, t, inflationIndex)
		if amt.IsZero() {
			continue
		}
		gross[s.category] = gross[s.category].Add(amt)
		cf.GrossIncome = cf.GrossIncome.Add(amt)
	}
	if r.dividendYield.IsPositive() && dividendBase.IsPositive() {
		cf.GrossDividends = dec.RoundBalance(dividendBase.Mul(r.dividendYield))
		cf.GrossIncome = cf.GrossIncome.Add(cf.GrossDividends)
	}

	cf.IncomeTax = r.taxCalc.CalculateTax(cf.GrossIncome, taxIndex)
	cf.EffectiveTaxRate = r.taxCalc.EffectiveRate(cf.GrossIncome, taxIndex)
	keep := one.Sub(cf.EffectiveTaxRate)
	net := func(d decimal.Decimal) decimal.Decimal { return dec.RoundBalance(d.Mul(keep)) }

	cf.AfterTax = domain.AfterTaxFlows{
		Salary:         net(gross[domain.IncomeSalary]),
		Rental:         net(gross[domain.IncomeRental]),
		Royalty:        net(gross[domain.IncomeRoyalty]),
		Dividends:      net(cf.GrossDividends),
		SocialSecurity: net(gross[domain.IncomeSocialSecurity]),
		OtherIncome:    net(gross[domain.IncomeOther]),
	}

	for _, s := range r.outflows {
		cf.TotalExpenses = cf.TotalExpenses.Add(s.amount(year, t, inflationIndex))
	}
	for _, e := range r.oneTime {
		if e.Year != year {
			continue
		}
		if e.AddToPrimaryHome {
			cf.PrimaryHomeCredits = cf.PrimaryHomeCredits.Add(e.Amount)
			continue
		}
		cf.TotalExpenses = cf.TotalExpenses.Add(e.Amount)
	}
	return cf
}
