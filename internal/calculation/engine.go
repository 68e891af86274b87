package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/networth-projector/internal/domain"
)

// Engine is the entry point for deterministic projections and Monte Carlo ensembles.
// It holds no per-request state and may serve concurrent callers.
type Engine struct {
	Assumptions domain.Assumptions
	Logger      Logger
}

// NewEngine creates an engine with the given assumptions and a no-op logger.
func NewEngine(a domain.Assumptions) *Engine {
	return &Engine{Assumptions: a, Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Simulate validates s and projects it with no shocks.
func (e *Engine) Simulate(ctx context.Context, s *domain.Scenario) (*domain.SimulationResult, error) {
	if s == nil {
		return nil, &domain.ValidationError{Field: "scenario", Message: "is required"}
	}
	if err := e.Assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("engine assumptions: %w", err)
	}
	if err := s.Validate(e.Assumptions); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.Logger.Infof("simulating %d-year horizon from %d (age %d)",
		e.Assumptions.EndAge-s.CurrentAge+1, s.CurrentYear, s.CurrentAge)
	return NewScenarioRunner(e.Assumptions, e.Logger).Run(s, ZeroShocks{})
}

// MonteCarlo validates req and runs the ensemble.
func (e *Engine) MonteCarlo(ctx context.Context, req *domain.MonteCarloRequest) (*domain.MonteCarloResult, error) {
	if req == nil {
		return nil, &domain.ValidationError{Field: "request", Message: "is required"}
	}
	if err := e.Assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("engine assumptions: %w", err)
	}
	if err := req.Validate(e.Assumptions); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewMonteCarloSimulator(e.Assumptions, e.Logger).RunSimulation(ctx, req)
}
