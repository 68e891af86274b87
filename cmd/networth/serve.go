package main

import (
	"github.com/rpgo/networth-projector/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if addr != "" {
				a.settings.Server.Addr = addr
			}

			api := server.NewWebAPI(server.Config{
				Addr:            a.settings.Server.Addr,
				RequestTimeout:  a.settings.Server.RequestTimeout,
				ShutdownTimeout: a.settings.Server.ShutdownTimeout,
				Dependencies: server.Dependencies{
					Planner: a.engine,
					Logger:  a.logger,
				},
			})
			return api.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; overrides server.addr from settings")
	return cmd
}
