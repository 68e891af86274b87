package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Planner runs projections; *calculation.Engine satisfies it.
type Planner interface {
	Simulate(ctx context.Context, s *domain.Scenario) (*domain.SimulationResult, error)
	MonteCarlo(ctx context.Context, req *domain.MonteCarloRequest) (*domain.MonteCarloResult, error)
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type Handler struct {
	planner Planner
}

func NewHandler(planner Planner) *Handler {
	return &Handler{planner: planner}
}

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var scenario domain.Scenario
	if err := decodeBody(w, r, &scenario); err != nil {
		writeError(w, logger, err)
		return
	}

	result, err := h.planner.Simulate(ctx, &scenario)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, logger, http.StatusOK, result)
}

func (h *Handler) MonteCarlo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req domain.MonteCarloRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, logger, err)
		return
	}

	result, err := h.planner.MonteCarlo(ctx, &req)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	logger.Info().
		Int("num_runs", result.NumRuns).
		Int("excluded_runs", result.ExcludedRuns).
		Int64("seed", result.Seed).
		Str("success_rate", result.SuccessRate.StringFixed(2)).
		Msg("monte carlo complete")
	writeJSON(w, logger, http.StatusOK, result)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, zerolog.Ctx(r.Context()), http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &domain.ValidationError{Field: "body", Message: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return nil
}

func statusFor(err error) int {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, logger, status, resp)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode response")
	}
}
