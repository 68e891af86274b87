package calculation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrTooManyFailedRuns is returned when more runs than the configured ratio hit a simulation error.
var ErrTooManyFailedRuns = errors.New("too many failed Monte Carlo runs")

var hundred = decimal.NewFromInt(100)

// runOutcome is the result slot one worker writes.
type runOutcome struct {
	traj *runTrajectory
	err  error
}

// MonteCarloSimulator runs an ensemble of shocked projections of one scenario.
type MonteCarloSimulator struct {
	Assumptions domain.Assumptions
	Logger      Logger

	// newShocks builds the per-run shock provider; tests replace it.
	newShocks func(seed int64, vol Volatility) ShockProvider
}

// NewMonteCarloSimulator creates a simulator for the given assumptions.
func NewMonteCarloSimulator(a domain.Assumptions, logger Logger) *MonteCarloSimulator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &MonteCarloSimulator{Assumptions: a, Logger: logger, newShocks: NewSampledShocks}
}

func (mcs *MonteCarloSimulator) workers() int {
	if mcs.Assumptions.MonteCarlo.Workers > 0 {
		return mcs.Assumptions.MonteCarlo.Workers
	}
	return runtime.NumCPU()
}

// RunSimulation executes req.NumRuns runs in parallel and aggregates them per year.
// The request is assumed to be validated.
func (mcs *MonteCarloSimulator) RunSimulation(ctx context.Context, req *domain.MonteCarloRequest) (*domain.MonteCarloResult, error) {
	base := resolveBaseSeed(req.Seed)
	vol := Volatility{
		Stock:      req.StockVolatility,
		RealEstate: req.RealEstateVolatility,
		Inflation:  req.InflationVolatility,
	}
	prepared := NewScenarioRunner(mcs.Assumptions, mcs.Logger).prepare(&req.Scenario)

	mcs.Logger.Infof("monte carlo: %d runs, base seed %d, %d workers", req.NumRuns, base, mcs.workers())

	// Run simulations in parallel
	results := make([]runOutcome, req.NumRuns)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, mcs.workers())

	for i := 0; i < req.NumRuns; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(simIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire semaphore
			defer func() { <-semaphore }() // Release semaphore

			if err := ctx.Err(); err != nil {
				results[simIndex] = runOutcome{err: err}
				return
			}
			run := simIndex + 1
			traj, err := prepared.run(mcs.newShocks(runSeed(base, run), vol), withRun(mcs.Logger, run))
			results[simIndex] = runOutcome{traj: traj, err: err}
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("monte carlo cancelled: %w", err)
	}

	included := make([]*runTrajectory, 0, req.NumRuns)
	excluded := 0
	for i, res := range results {
		if res.err == nil {
			included = append(included, res.traj)
			continue
		}
		var simErr *domain.SimulationError
		if !errors.As(res.err, &simErr) {
			return nil, fmt.Errorf("monte carlo run %d: %w", i+1, res.err)
		}
		simErr.Run = i + 1
		excluded++
		mcs.Logger.Warnf("excluding run: %v", simErr)
	}

	ratio := float64(excluded) / float64(req.NumRuns)
	if len(included) == 0 || ratio > mcs.Assumptions.MonteCarlo.MaxFailureRatio {
		return nil, fmt.Errorf("%d of %d runs failed (limit %.2f%%): %w",
			excluded, req.NumRuns, mcs.Assumptions.MonteCarlo.MaxFailureRatio*100, ErrTooManyFailedRuns)
	}

	result := &domain.MonteCarloResult{
		PercentileData:     make([]domain.PercentileRow, prepared.years),
		StockReturnBoxData: make([]domain.StockReturnBoxRow, prepared.years),
		SuccessRate:        mcs.calculateSuccessRate(included),
		NumRuns:            req.NumRuns,
		ExcludedRuns:       excluded,
		Seed:               base,
	}

	netWorth := make([]decimal.Decimal, len(included))
	stock := make([]float64, len(included))
	for t := 0; t < prepared.years; t++ {
		for i, traj := range included {
			netWorth[i] = traj.Timeline[t].NominalNetWorth
			stock[i] = traj.StockShocks[t]
		}
		age, year := included[0].Timeline[t].Age, included[0].Timeline[t].Year

		nw := summarizeValues(netWorth)
		result.PercentileData[t] = domain.PercentileRow{
			Age: age, Year: year,
			P10: nw.P10, P25: nw.P25, P50: nw.P50, P75: nw.P75, P90: nw.P90,
			Mean: nw.Mean,
		}
		sr := summarizeValues(floatsToDecimals(stock))
		result.StockReturnBoxData[t] = domain.StockReturnBoxRow{
			Age: age, Year: year,
			Min: sr.Min, Q1: sr.P25, Median: sr.P50, Q3: sr.P75, Max: sr.Max,
		}
	}

	mcs.Logger.Infof("monte carlo: success rate %s%% over %d runs (%d excluded)",
		result.SuccessRate.StringFixed(2), len(included), excluded)
	return result, nil
}

// calculateSuccessRate is the percentage of runs that were never depleted before EndAge.
func (mcs *MonteCarloSimulator) calculateSuccessRate(runs []*runTrajectory) decimal.Decimal {
	if len(runs) == 0 {
		return decimal.Zero
	}
	successes := 0
	for _, traj := range runs {
		if !traj.depletedBefore(mcs.Assumptions.EndAge) {
			successes++
		}
	}
	return decimal.NewFromInt(int64(successes)).Mul(hundred).Div(decimal.NewFromInt(int64(len(runs))))
}
