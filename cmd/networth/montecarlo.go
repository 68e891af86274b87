package main

import (
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/internal/output"
	"github.com/spf13/cobra"
)

func newMonteCarloCmd() *cobra.Command {
	var (
		format, outDir, csvDir   string
		runs                     int
		stockVol, reVol, inflVol float64
		seed                     int64
		withBaseline             bool
	)

	cmd := &cobra.Command{
		Use:     "montecarlo <scenario.yaml>",
		Aliases: []string{"mc"},
		Short:   "Run a Monte Carlo ensemble of shocked projections",
		Long: "Run a Monte Carlo ensemble. The scenario file may carry num_runs, stock_volatility,\n" +
			"real_estate_volatility, inflation_volatility and seed. Flags override them, and their\n" +
			"defaults apply to any the file omits. An explicit 0 in the file is kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defaults := domain.MonteCarloRequest{
				NumRuns:              runs,
				StockVolatility:      stockVol,
				RealEstateVolatility: reVol,
				InflationVolatility:  inflVol,
			}
			req, err := a.parser.LoadMonteCarloRequest(args[0], defaults)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("runs") {
				req.NumRuns = runs
			}
			if flags.Changed("stock-vol") {
				req.StockVolatility = stockVol
			}
			if flags.Changed("re-vol") {
				req.RealEstateVolatility = reVol
			}
			if flags.Changed("inflation-vol") {
				req.InflationVolatility = inflVol
			}
			if flags.Changed("seed") {
				req.Seed = seed
			}

			result, err := a.engine.MonteCarlo(cmd.Context(), req)
			if err != nil {
				return err
			}
			report := &output.Report{Scenario: &req.Scenario, MonteCarlo: result}

			if withBaseline {
				baseline, err := a.engine.Simulate(cmd.Context(), &req.Scenario)
				if err != nil {
					return err
				}
				report.Simulation = baseline
			}

			if csvDir != "" {
				if err := output.WriteMonteCarloCSVs(result, csvDir); err != nil {
					return err
				}
				a.logger.Info().Str("dir", csvDir).Msg("monte carlo CSVs written")
			}
			return emit(cmd.OutOrStdout(), a.logger, format, outDir, report)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&runs, "runs", "n", 500, "Number of runs (1 to the configured maximum)")
	f.Float64Var(&stockVol, "stock-vol", 0.15, "Annual stock volatility as a decimal")
	f.Float64Var(&reVol, "re-vol", 0.05, "Annual real estate volatility as a decimal")
	f.Float64Var(&inflVol, "inflation-vol", 0.01, "Annual inflation volatility as a decimal")
	f.Int64Var(&seed, "seed", 0, "Base seed for reproducible runs (0 picks one)")
	f.BoolVar(&withBaseline, "baseline", false, "Also run and include the deterministic projection")
	f.StringVarP(&format, "format", "f", "console", "Output format (console, montecarlo-csv, json)")
	f.StringVarP(&outDir, "out", "o", "", "Write a timestamped report into this directory instead of stdout")
	f.StringVar(&csvDir, "csv-dir", "", "Also write summary and percentile CSVs into this directory")
	return cmd
}
