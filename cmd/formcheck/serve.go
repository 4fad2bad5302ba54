package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ahrdadan/formcheck/internal/api"
	"github.com/ahrdadan/formcheck/internal/browser"
	"github.com/ahrdadan/formcheck/internal/config"
	"github.com/ahrdadan/formcheck/internal/scenario"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(load loader) *cobra.Command {
	var withFixture bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an HTTP API that runs the scenario on request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			runner := scenario.NewRunner(browser.NewProvisioner(e.logger), e.logger, e.publishers...)
			optionsFor := func(name string) browser.Options {
				cfg := *e.cfg
				cfg.Browser = name
				return cfg.BrowserOptions()
			}
			handler := api.NewHandler(runner, e.input(), optionsFor)

			app := fiber.New(fiber.Config{
				AppName:               config.AppName,
				ErrorHandler:          api.ErrorHandler,
				DisableStartupMessage: true,
			})
			app.Use(recover.New())
			app.Use(logger.New())
			api.SetupRoutes(app, handler, api.RouteConfig{WithFixture: withFixture})

			// Graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-quit
				e.logger.Info("Shutting down server")
				if err := app.Shutdown(); err != nil {
					e.logger.Error("Error during shutdown", zap.Error(err))
				}
			}()

			e.logger.Info("Starting server", zap.String("addr", e.cfg.Listen), zap.Bool("fixture", withFixture))
			return app.Listen(e.cfg.Listen)
		},
	}

	cmd.Flags().BoolVar(&withFixture, "with-fixture", false, "Also serve the local form page under /fixture/form.html")
	return cmd
}
