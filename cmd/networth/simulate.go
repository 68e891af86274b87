package main

import (
	"github.com/rpgo/networth-projector/internal/output"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run the deterministic projection for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			scenario, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			result, err := a.engine.Simulate(cmd.Context(), scenario)
			if err != nil {
				return err
			}
			report := &output.Report{Scenario: scenario, Simulation: result}
			return emit(cmd.OutOrStdout(), a.logger, format, outDir, report)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, csv, json)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write a timestamped report into this directory instead of stdout")
	return cmd
}
