package main

import (
	"fmt"
	"os"

	"github.com/rpgo/networth-projector/internal/config"
	"github.com/spf13/cobra"
)

func newExampleCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print a sample scenario to start from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenario := config.CreateExampleScenario()
			if outFile == "" {
				return config.WriteScenario(cmd.OutOrStdout(), scenario)
			}

			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outFile, err)
			}
			defer f.Close()
			if err := config.WriteScenario(f, scenario); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Example scenario written to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
