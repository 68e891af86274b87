package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/rpgo/networth-projector/internal/domain"
	dec "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	one = decimal.NewFromInt(1)

	// ErrIlliquid is returned when a withdrawal targets real estate.
	ErrIlliquid = errors.New("holding is illiquid")
)

// assetClass is the reporting and withdrawal bucket a holding belongs to.
type assetClass int

const (
	classPreTax assetClass = iota
	classRoth
	classBrokerage
	classVolatile
	classRealEstate
	classPrimaryHome
)

func classify(h domain.AssetHolding) (assetClass, error) {
	switch h.TaxTreatment {
	case domain.TaxTreatmentPreTax:
		return classPreTax, nil
	case domain.TaxTreatmentRoth:
		return classRoth, nil
	case domain.TaxTreatmentTaxable:
		if h.IsVolatile() {
			return classVolatile, nil
		}
		return classBrokerage, nil
	case domain.TaxTreatmentRealEstate:
		if h.IsPrimaryHome() {
			return classPrimaryHome, nil
		}
		return classRealEstate, nil
	default:
		return 0, fmt.Errorf("holding %q: unrecognized tax treatment %q", h.Name, h.TaxTreatment)
	}
}

// source maps a class to its waterfall tier; real estate has none.
func (c assetClass) source() (domain.WithdrawalSource, bool) {
	switch c {
	case classBrokerage:
		return domain.SourceBrokerage, true
	case classVolatile:
		return domain.SourceVolatile, true
	case classPreTax:
		return domain.SourcePreTax, true
	case classRoth:
		return domain.SourceRoth, true
	default:
		return "", false
	}
}

type holding struct {
	name         string
	treatment    domain.TaxTreatment
	class        assetClass
	growthRate   decimal.Decimal
	balance      decimal.Decimal
	basis        decimal.Decimal
	basisTracked bool
}

// Withdrawal is the outcome of drawing on one holding.
type Withdrawal struct {
	Holding   string
	Source    domain.WithdrawalSource
	Requested decimal.Decimal
	Gross     decimal.Decimal
	Proceeds  decimal.Decimal
	Partial   bool
}

// Ledger owns the mutable balances of a single run.
type Ledger struct {
	holdings []holding
	tax      domain.TaxAssumptions
}

// NewLedger copies assets into run-private state.
func NewLedger(assets []domain.AssetHolding, tax domain.TaxAssumptions) (*Ledger, error) {
	l := &Ledger{holdings: make([]holding, 0, len(assets)), tax: tax}
	for _, a := range assets {
		if err := l.add(a); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Ledger) add(a domain.AssetHolding) error {
	class, err := classify(a)
	if err != nil {
		return err
	}
	h := holding{
		name:       a.Name,
		treatment:  a.TaxTreatment,
		class:      class,
		growthRate: a.GrowthRate,
		balance:    a.Balance,
	}
	if a.CostBasis != nil {
		h.basis = *a.CostBasis
		h.basisTracked = true
	}
	l.holdings = append(l.holdings, h)
	return nil
}

// Name returns the name of holding i.
func (l *Ledger) Name(i int) string { return l.holdings[i].name }

// Balance returns the current balance of holding i.
func (l *Ledger) Balance(i int) decimal.Decimal { return l.holdings[i].balance }

// Find returns the index of the first holding called name.
func (l *Ledger) Find(name string) (int, bool) {
	for i := range l.holdings {
		if l.holdings[i].name == name {
			return i, true
		}
	}
	return -1, false
}

func (l *Ledger) firstOfClass(c assetClass) (int, bool) {
	for i := range l.holdings {
		if l.holdings[i].class == c {
			return i, true
		}
	}
	return -1, false
}

// IndicesFor lists holdings drawn by a waterfall tier, in input order.
func (l *Ledger) IndicesFor(src domain.WithdrawalSource) []int {
	var out []int
	for i := range l.holdings {
		if s, ok := l.holdings[i].class.source(); ok && s == src {
			out = append(out, i)
		}
	}
	return out
}

// Grow applies one year of growth plus the class shock to every holding.
// A combined factor below zero wipes the holding rather than making it negative.
func (l *Ledger) Grow(shocks YearShocks) error {
	for i := range l.holdings {
		h := &l.holdings[i]
		var shock float64
		switch h.treatment {
		case domain.TaxTreatmentPreTax, domain.TaxTreatmentRoth, domain.TaxTreatmentTaxable:
			shock = shocks.Stock
		case domain.TaxTreatmentRealEstate:
			shock = shocks.RealEstate
		default:
			return fmt.Errorf("holding %q: unrecognized tax treatment %q", h.name, h.treatment)
		}
		if math.IsNaN(shock) || math.IsInf(shock, 0) {
			return fmt.Errorf("holding %q: non-finite shock %v", h.name, shock)
		}
		factor := one.Add(h.growthRate)
		if shock != 0 {
			factor = factor.Add(decimal.NewFromFloat(shock))
		}
		factor = dec.NonNegative(factor)
		h.balance = dec.RoundBalance(h.balance.Mul(factor))
	}
	return nil
}

// Credit adds new money to holding i.
func (l *Ledger) Credit(i int, amount decimal.Decimal) {
	h := &l.holdings[i]
	h.balance = dec.RoundBalance(h.balance.Add(amount))
	if h.basisTracked {
		h.basis = dec.RoundBalance(h.basis.Add(amount))
	}
}

// ApplyAddition credits a one-time addition. Resolution order: explicit target, a holding
// with the addition's name, the first brokerage holding, else a new holding.
func (l *Ledger) ApplyAddition(oa domain.OneTimeAssetAddition) error {
	if !oa.Value.IsPositive() {
		return nil
	}
	if oa.Target != "" {
		if i, ok := l.Find(oa.Target); ok {
			l.Credit(i, oa.Value)
			return nil
		}
		return fmt.Errorf("addition %q: no holding named %q", oa.Name, oa.Target)
	}
	if i, ok := l.Find(oa.Name); ok {
		l.Credit(i, oa.Value)
		return nil
	}
	if i, ok := l.firstOfClass(classBrokerage); ok {
		l.Credit(i, oa.Value)
		return nil
	}
	treatment := oa.TaxTreatment
	if treatment == "" {
		treatment = domain.TaxTreatmentTaxable
	}
	growth := decimal.Zero
	if oa.GrowthRate != nil {
		growth = *oa.GrowthRate
	}
	created := domain.AssetHolding{Name: oa.Name, Balance: oa.Value, GrowthRate: growth, TaxTreatment: treatment}
	if treatment == domain.TaxTreatmentTaxable {
		basis := oa.Value
		created.CostBasis = &basis
	}
	return l.add(created)
}

// CreditPrimaryHome adds equity to the residence, creating one if the household has none.
func (l *Ledger) CreditPrimaryHome(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	if i, ok := l.firstOfClass(classPrimaryHome); ok {
		l.Credit(i, amount)
		return nil
	}
	primary := true
	return l.add(domain.AssetHolding{
		Name:         "Primary Home",
		Balance:      amount,
		TaxTreatment: domain.TaxTreatmentRealEstate,
		PrimaryHome:  &primary,
	})
}

// ReinvestSurplus parks unspent after-tax cash in brokerage, then volatile, else a new holding.
func (l *Ledger) ReinvestSurplus(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	if i, ok := l.firstOfClass(classBrokerage); ok {
		l.Credit(i, amount)
		return nil
	}
	if i, ok := l.firstOfClass(classVolatile); ok {
		l.Credit(i, amount)
		return nil
	}
	basis := amount
	return l.add(domain.AssetHolding{
		Name:         "Reinvested Surplus",
		Balance:      amount,
		TaxTreatment: domain.TaxTreatmentTaxable,
		CostBasis:    &basis,
	})
}

// gainFraction is the share of a taxable withdrawal treated as realized gain.
func (l *Ledger) gainFraction(h *holding) decimal.Decimal {
	if !h.basisTracked {
		return l.tax.DefaultGainFraction
	}
	if !h.balance.IsPositive() {
		return decimal.Zero
	}
	frac := h.balance.Sub(h.basis).Div(h.balance)
	return dec.Min(dec.NonNegative(frac), one)
}

// proceedsFactor is after-tax cash per gross dollar withdrawn from h.
func (l *Ledger) proceedsFactor(h *holding) (decimal.Decimal, error) {
	switch h.treatment {
	case domain.TaxTreatmentRoth:
		return one, nil
	case domain.TaxTreatmentPreTax:
		return one.Sub(l.tax.OrdinaryRate), nil
	case domain.TaxTreatmentTaxable:
		return one.Sub(l.tax.CapitalGainsRate.Mul(l.gainFraction(h))), nil
	case domain.TaxTreatmentRealEstate:
		return decimal.Zero, fmt.Errorf("holding %q: %w", h.name, ErrIlliquid)
	default:
		return decimal.Zero, fmt.Errorf("holding %q: unrecognized tax treatment %q", h.name, h.treatment)
	}
}

// GrossForProceeds inverts the tax function of holding i. It reports false when the
// holding cannot produce after-tax cash at all.
func (l *Ledger) GrossForProceeds(i int, proceeds decimal.Decimal) (decimal.Decimal, bool) {
	factor, err := l.proceedsFactor(&l.holdings[i])
	if err != nil || !factor.IsPositive() {
		return decimal.Zero, false
	}
	return proceeds.Div(factor), true
}

// Withdraw takes up to gross from holding i; the balance never goes below zero.
func (l *Ledger) Withdraw(i int, gross decimal.Decimal) (Withdrawal, error) {
	h := &l.holdings[i]
	src, _ := h.class.source()
	w := Withdrawal{Holding: h.name, Source: src, Requested: gross}
	factor, err := l.proceedsFactor(h)
	if err != nil {
		return w, err
	}
	if !gross.IsPositive() || !h.balance.IsPositive() {
		w.Partial = gross.IsPositive()
		return w, nil
	}
	take := dec.Min(gross, h.balance)
	if h.basisTracked {
		h.basis = dec.RoundBalance(h.basis.Sub(h.basis.Mul(take).Div(h.balance)))
	}
	if take.Equal(h.balance) {
		h.balance = decimal.Zero
	} else {
		h.balance = dec.RoundBalance(h.balance.Sub(take))
	}
	w.Gross = take
	w.Proceeds = take.Mul(factor)
	w.Partial = take.LessThan(gross)
	return w, nil
}

// Balances rolls holdings up by class.
func (l *Ledger) Balances() domain.ClassBalances {
	var b domain.ClassBalances
	for i := range l.holdings {
		h := &l.holdings[i]
		switch h.class {
		case classPreTax:
			b.PreTax = b.PreTax.Add(h.balance)
		case classRoth:
			b.Roth = b.Roth.Add(h.balance)
		case classBrokerage:
			b.Brokerage = b.Brokerage.Add(h.balance)
		case classVolatile:
			b.Volatile = b.Volatile.Add(h.balance)
		case classRealEstate:
			b.RealEstate = b.RealEstate.Add(h.balance)
		case classPrimaryHome:
			b.PrimaryHome = b.PrimaryHome.Add(h.balance)
		}
	}
	return b
}

// NetWorth sums every holding.
func (l *Ledger) NetWorth() decimal.Decimal {
	total := decimal.Zero
	for i := range l.holdings {
		total = total.Add(l.holdings[i].balance)
	}
	return total
}

// sumOfClass totals the balances of one class.
func (l *Ledger) sumOfClass(c assetClass) decimal.Decimal {
	total := decimal.Zero
	for i := range l.holdings {
		if l.holdings[i].class == c {
			total = total.Add(l.holdings[i].balance)
		}
	}
	return total
}

// Check reports the first negative balance or basis.
func (l *Ledger) Check() error {
	for i := range l.holdings {
		h := &l.holdings[i]
		if h.balance.IsNegative() {
			return fmt.Errorf("holding %q balance went negative: %s", h.name, h.balance.String())
		}
		if h.basisTracked && h.basis.IsNegative() {
			return fmt.Errorf("holding %q cost basis went negative: %s", h.name, h.basis.String())
		}
	}
	return nil
}
