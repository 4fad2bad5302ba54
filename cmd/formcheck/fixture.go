package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ahrdadan/formcheck/internal/fixture"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFixtureCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "fixture",
		Short: "Serve a local copy of the registration form for offline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			srv, err := fixture.Start(e.cfg.Listen)
			if err != nil {
				return err
			}
			e.logger.Info("Serving form fixture", zap.String("url", srv.URL()))

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			e.logger.Info("Shutting down fixture")
			return srv.Close()
		},
	}
}
