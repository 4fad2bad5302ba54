package main

import (
	"fmt"

	"github.com/ahrdadan/formcheck/internal/config"
	"github.com/ahrdadan/formcheck/internal/logging"
	"github.com/ahrdadan/formcheck/internal/report"
	"github.com/ahrdadan/formcheck/internal/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "formcheck",
		Short: "Fill and submit a registration form in a real browser and verify the echoed data",
		Long: `formcheck launches Chrome or Firefox, fills the registration form,
submits it and checks the confirmation block against the submitted values.

Every flag can also be set through a FORMCHECK_* environment variable,
e.g. FORMCHECK_BROWSER=firefox or FORMCHECK_USER_EMAIL=user@example.com.`,
		Version: config.Version,
		// Failures are reported by the commands themselves
		SilenceUsage: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("%s v{{.Version}}\n", config.AppName))

	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	config.RegisterFlags(root.PersistentFlags())

	load := func(cmd *cobra.Command) (*env, error) {
		return newEnv(cmd, configFile)
	}

	root.AddCommand(newRunCmd(load))
	root.AddCommand(newServeCmd(load))
	root.AddCommand(newFixtureCmd(load))
	root.AddCommand(newBrowsersCmd())

	return root
}

// env is the configuration and collaborators shared by commands.
type env struct {
	cfg        *config.Config
	logger     *zap.Logger
	publishers []report.Publisher
	closers    []func()
}

type loader func(cmd *cobra.Command) (*env, error)

func newEnv(cmd *cobra.Command, configFile string) (*env, error) {
	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:        cfg,
		logger:     logger,
		publishers: []report.Publisher{report.LogPublisher{Logger: logger}},
	}
	e.closers = append(e.closers, func() { _ = logger.Sync() })

	if cfg.NatsURL != "" {
		pub, err := report.DialNATS(cfg.NatsURL, cfg.NatsSubject)
		if err != nil {
			e.close()
			return nil, err
		}
		logger.Info("Publishing reports to NATS", zap.String("url", cfg.NatsURL), zap.String("subject", cfg.NatsSubject))
		e.publishers = append(e.publishers, pub)
		e.closers = append([]func(){func() { _ = pub.Close() }}, e.closers...)
	}

	return e, nil
}

// input returns the scenario input described by the configuration.
func (e *env) input() scenario.Input {
	return scenario.Input{
		Browser:       e.cfg.Browser,
		URL:           e.cfg.URL,
		UserName:      e.cfg.UserName,
		UserEmail:     e.cfg.UserEmail,
		UserPassword:  e.cfg.UserPassword,
		DateOfBirth:   scenario.DateOfBirth,
		LanguageLevel: scenario.LanguageLevel,
		Options:       e.cfg.BrowserOptions(),
		Wait:          e.cfg.ExplicitWait,
	}
}

func (e *env) close() {
	for _, fn := range e.closers {
		fn()
	}
}
