package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahrdadan/formcheck/internal/browser"
	"github.com/ahrdadan/formcheck/internal/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(load loader) *cobra.Command {
	var printJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the form submission scenario once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			in := e.input()
			e.logger.Info("Using user data",
				zap.String("browser", in.Browser),
				zap.String("user_name", in.UserName),
				zap.String("user_email", in.UserEmail))

			runner := scenario.NewRunner(browser.NewProvisioner(e.logger), e.logger, e.publishers...)
			rep, runErr := runner.Run(ctx, in)

			if printJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&printJSON, "json", false, "Print the run report as JSON")
	return cmd
}
