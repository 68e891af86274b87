package calculation

import (
	"fmt"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/dateutil"
	dec "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// runTrajectory is one run's full output: the timeline and the stock shock drawn for each year.
type runTrajectory struct {
	Timeline    []domain.YearRecord
	StockShocks []float64
}

func (rt *runTrajectory) depletedBefore(endAge int) bool {
	for _, rec := range rt.Timeline {
		if rec.Age < endAge && rec.Depleted {
			return true
		}
	}
	return false
}

// preparedScenario is the read-only, precomputed form of a scenario. It is safe to share
// between concurrent runs; every run builds its own ledger from it.
type preparedScenario struct {
	scenario    *domain.Scenario
	assumptions domain.Assumptions
	years       int
	sim         YearSimulator
}

// ScenarioRunner iterates the year simulator across the horizon
type ScenarioRunner struct {
	Assumptions domain.Assumptions
	Logger      Logger
}

// NewScenarioRunner creates a runner; a nil logger is replaced by a no-op.
func NewScenarioRunner(a domain.Assumptions, logger Logger) *ScenarioRunner {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ScenarioRunner{Assumptions: a, Logger: logger}
}

func (r *ScenarioRunner) prepare(s *domain.Scenario) *preparedScenario {
	scenario := s.Clone()
	years := dateutil.HorizonYears(scenario.CurrentAge, r.Assumptions.EndAge)

	deflators := make([]decimal.Decimal, years)
	factor := one
	step := one.Add(scenario.GeneralInflation)
	for t := 0; t < years; t++ {
		deflators[t] = factor
		factor = factor.Mul(step)
	}

	return &preparedScenario{
		scenario:    scenario,
		assumptions: r.Assumptions,
		years:       years,
		sim: YearSimulator{
			generalInflation: scenario.GeneralInflation,
			deflators:        deflators,
			additions:        scenario.OtherAssets,
			cashFlow:         NewCashFlowResolver(scenario, r.Assumptions.Tax, years),
			waterfall:        NewWithdrawalWaterfall(r.Assumptions.Withdrawal, scenario.RetirementWithdrawalAge),
			rmd:              NewRMDCalculator(scenario.BirthYear()),
			policy:           r.Assumptions.Withdrawal,
			logger:           r.Logger,
		},
	}
}

// run executes one trajectory with run-private ledger and state.
func (p *preparedScenario) run(shocks ShockProvider, logger Logger) (*runTrajectory, error) {
	ledger, err := NewLedger(p.scenario.Assets, p.assumptions.Tax)
	if err != nil {
		return nil, &domain.SimulationError{Year: p.scenario.CurrentYear, Message: err.Error()}
	}
	sim := p.sim
	sim.logger = logger

	traj := &runTrajectory{
		Timeline:    make([]domain.YearRecord, 0, p.years),
		StockShocks: make([]float64, 0, p.years),
	}
	st := newRunState(p.scenario)
	for t := 0; t < p.years; t++ {
		s := shocks.Next()
		rec, err := sim.Step(ledger, st, s)
		if err != nil {
			return nil, err
		}
		traj.Timeline = append(traj.Timeline, rec)
		traj.StockShocks = append(traj.StockShocks, s.Stock)
		st.advance()
	}
	return traj, nil
}

// summarize derives metrics and the freedom year from a timeline.
func (p *preparedScenario) summarize(timeline []domain.YearRecord) *domain.SimulationResult {
	result := &domain.SimulationResult{Timeline: timeline, Metrics: domain.Metrics{Milestones: []domain.NetWorthPoint{}}}
	for _, rec := range timeline {
		if rec.Age == p.scenario.TargetRetirementAge {
			point := pointFor(rec)
			result.Metrics.Retirement = &point
		}
	}
	for _, age := range p.assumptions.MilestoneAges {
		for _, rec := range timeline {
			if rec.Age == age {
				result.Metrics.Milestones = append(result.Metrics.Milestones, pointFor(rec))
				break
			}
		}
	}
	result.FreedomYear = freedomYear(timeline)
	return result
}

func pointFor(rec domain.YearRecord) domain.NetWorthPoint {
	return domain.NetWorthPoint{Age: rec.Age, Year: rec.Year, Nominal: rec.NominalNetWorth, Real: rec.RealNetWorth}
}

// freedomYear is the first year from which passive after-tax income covers expenses
// in that year and every later year of the horizon.
func freedomYear(timeline []domain.YearRecord) *int {
	first := -1
	for i := len(timeline) - 1; i >= 0; i-- {
		rec := timeline[i]
		if rec.AfterTax.Passive().LessThan(rec.TotalExpenses) {
			break
		}
		first = i
	}
	if first < 0 {
		return nil
	}
	year := timeline[first].Year
	return &year
}

// Run projects s year by year. It is a pure function of its arguments: the scenario is
// copied and all mutable state is local to the call. Pass ZeroShocks for a deterministic run.
func (r *ScenarioRunner) Run(s *domain.Scenario, shocks ShockProvider) (*domain.SimulationResult, error) {
	if shocks == nil {
		shocks = ZeroShocks{}
	}
	p := r.prepare(s)
	traj, err := p.run(shocks, r.Logger)
	if err != nil {
		return nil, fmt.Errorf("scenario run failed: %w", err)
	}
	r.Logger.Debugf("projected %d years from %d, final net worth %s",
		len(traj.Timeline), s.CurrentYear, finalNetWorth(traj.Timeline))
	return p.summarize(traj.Timeline), nil
}

func finalNetWorth(timeline []domain.YearRecord) string {
	if len(timeline) == 0 {
		return "n/a"
	}
	return dec.NewMoneyFromDecimal(timeline[len(timeline)-1].NominalNetWorth).Format()
}
