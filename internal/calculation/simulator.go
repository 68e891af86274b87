package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/networth-projector/internal/domain"
	dec "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// reconcileTolerance bounds the relative gap between class rollups and net worth.
const reconcileTolerance = 1e-6

// runState is the part of a run that carries from one year to the next.
type runState struct {
	t              int
	year           int
	age            int
	inflationIndex decimal.Decimal
	depleted       bool
}

func newRunState(s *domain.Scenario) *runState {
	return &runState{year: s.CurrentYear, age: s.CurrentAge, inflationIndex: one}
}

func (st *runState) advance() {
	st.t++
	st.year++
	st.age++
}

// YearSimulator performs one year-step: grow, apply one-time events, resolve cash flow,
// cover any shortfall, snapshot.
type YearSimulator struct {
	generalInflation decimal.Decimal
	deflators        []decimal.Decimal
	additions        []domain.OneTimeAssetAddition
	cashFlow         *CashFlowResolver
	waterfall        *WithdrawalWaterfall
	rmd              *RMDCalculator
	policy           domain.WithdrawalPolicy
	logger           Logger
}

// Step advances the ledger through st.year and returns the year's record.
func (ys *YearSimulator) Step(ledger *Ledger, st *runState, shocks YearShocks) (domain.YearRecord, error) {
	fail := func(format string, args ...any) error {
		return &domain.SimulationError{Year: st.year, Message: fmt.Sprintf(format, args...)}
	}

	if math.IsNaN(shocks.Inflation) || math.IsInf(shocks.Inflation, 0) {
		return domain.YearRecord{}, fail("non-finite inflation shock %v", shocks.Inflation)
	}
	if st.t > 0 {
		step := one.Add(ys.generalInflation)
		if shocks.Inflation != 0 {
			step = step.Add(decimal.NewFromFloat(shocks.Inflation))
		}
		st.inflationIndex = dec.RoundBalance(st.inflationIndex.Mul(dec.NonNegative(step)))
	}

	// 1. growth
	if err := ledger.Grow(shocks); err != nil {
		return domain.YearRecord{}, fail("%v", err)
	}

	// 2. one-time additions
	for _, oa := range ys.additions {
		if oa.AddYear != st.year {
			continue
		}
		if err := ledger.ApplyAddition(oa); err != nil {
			return domain.YearRecord{}, fail("%v", err)
		}
	}

	// 3. cash flow
	cf := ys.cashFlow.Resolve(st.t, st.inflationIndex, ys.deflators[st.t], ledger.sumOfClass(classBrokerage))
	if err := ledger.CreditPrimaryHome(cf.PrimaryHomeCredits); err != nil {
		return domain.YearRecord{}, fail("%v", err)
	}
	flows := cf.AfterTax

	rmdProceeds := decimal.Zero
	if ys.policy.EnforceRMD {
		for _, i := range ledger.IndicesFor(domain.SourcePreTax) {
			required := ys.rmd.CalculateRMD(ledger.Balance(i), st.age)
			if !required.IsPositive() {
				continue
			}
			wd, err := ledger.Withdraw(i, required)
			if err != nil {
				return domain.YearRecord{}, fail("rmd: %v", err)
			}
			rmdProceeds = rmdProceeds.Add(wd.Proceeds)
		}
		flows.PreTaxWithdrawals = flows.PreTaxWithdrawals.Add(rmdProceeds)
	}

	// 4. shortfall or surplus
	income := flows.Income().Add(rmdProceeds)
	gap := cf.TotalExpenses.Sub(income)
	res, err := ys.waterfall.Cover(ledger, gap, st.age)
	if err != nil {
		return domain.YearRecord{}, fail("withdrawal: %v", err)
	}
	for _, d := range res.Draws {
		switch d.Source {
		case domain.SourceBrokerage:
			flows.BrokerageWithdrawals = flows.BrokerageWithdrawals.Add(d.Proceeds)
		case domain.SourceVolatile:
			flows.VolatileWithdrawals = flows.VolatileWithdrawals.Add(d.Proceeds)
		case domain.SourcePreTax:
			flows.PreTaxWithdrawals = flows.PreTaxWithdrawals.Add(d.Proceeds)
		case domain.SourceRoth:
			flows.RothWithdrawals = flows.RothWithdrawals.Add(d.Proceeds)
		}
	}
	if res.State == StateExhausted {
		ys.logger.Debugf("year %d (age %d): liquid assets exhausted, unmet shortfall %s",
			st.year, st.age, res.Unmet.StringFixed(2))
	}

	if surplus := gap.Neg(); surplus.IsPositive() {
		reinvest := decimal.Zero
		switch {
		case ys.policy.ReinvestSurplus:
			reinvest = surplus
		case ys.policy.EnforceRMD:
			reinvest = dec.Min(surplus, rmdProceeds)
		}
		if err := ledger.ReinvestSurplus(reinvest); err != nil {
			return domain.YearRecord{}, fail("reinvest: %v", err)
		}
	}

	// 5. invariants and snapshot
	if err := ledger.Check(); err != nil {
		return domain.YearRecord{}, fail("%v", err)
	}
	balances := ledger.Balances()
	nominal := balances.Total()
	if !dec.WithinRelative(nominal, ledger.NetWorth(), reconcileTolerance) {
		return domain.YearRecord{}, fail("class balances %s do not reconcile with net worth %s",
			nominal.String(), ledger.NetWorth().String())
	}

	st.depleted = st.depleted || res.State == StateExhausted
	return domain.YearRecord{
		Year:            st.year,
		Age:             st.age,
		Balances:        balances,
		NominalNetWorth: nominal,
		RealNetWorth:    nominal.Div(ys.deflators[st.t]),
		AfterTax:        flows,
		TotalExpenses:   cf.TotalExpenses,
		UnmetShortfall:  res.Unmet,
		Depleted:        st.depleted,
	}, nil
}
