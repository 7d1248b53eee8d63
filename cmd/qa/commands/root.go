package commands

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/questionboard/core/internal/adapters/repository"
	"github.com/questionboard/core/internal/application/services"
	"github.com/questionboard/core/internal/infrastructure/config"
	"github.com/questionboard/core/internal/infrastructure/filestore"
	"github.com/questionboard/core/internal/infrastructure/logger"
	"github.com/questionboard/core/internal/infrastructure/metrics"
	"github.com/questionboard/core/internal/ports"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile  string
	File        string
	Format      string
	MetricsFile string
}

// app is the wiring shared by subcommands, built once per invocation.
type app struct {
	cfg         *config.Config
	logger      *logger.Logger
	file        *filestore.File
	metrics     *metrics.Metrics
	service     ports.QuestionService
	metricsFile string
}

// NewRootCommand creates the root command for the qa CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:           "qa",
		Short:         "Question board store",
		Long:          "qa reads and appends questions and answers kept in a single JSON collection file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return a.setup(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "collection file (overrides store.path)")
	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "o", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write store metrics to this textfile on exit")

	cmd.AddCommand(newInitCommand(a, opts))
	cmd.AddCommand(newQuestionsCommand(a, opts))
	cmd.AddCommand(newAnswersCommand(a, opts))
	cmd.AddCommand(newCheckCommand(a, opts))
	withTeardown(cmd, a)
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print qa version",
		// no store access
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "qa v1.0.0")
		},
	}
}

func (a *app) setup(opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if opts.File != "" {
		cfg.Store.Path = opts.File
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize logger", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m, err = metrics.New(prometheus.NewRegistry())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to initialize metrics", err)
		}
	}

	a.metricsFile = cfg.Metrics.Textfile
	if opts.MetricsFile != "" {
		a.metricsFile = opts.MetricsFile
	}

	a.cfg = cfg
	a.logger = appLogger
	a.metrics = m
	a.file = filestore.New(cfg.Store)
	repo := repository.NewQuestionRepository(a.file, repository.WithLogger(appLogger))
	a.service = services.NewQuestionService(repo, m, appLogger)

	appLogger.Debugw("Store ready", "path", cfg.Store.Path, "indent", cfg.Store.Indent)
	return nil
}

// withTeardown wraps every RunE under cmd so metrics are exported and the
// logger flushed on failed runs too. cobra skips post-run hooks on error.
func withTeardown(cmd *cobra.Command, a *app) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if terr := a.teardown(); err == nil {
				err = terr
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		withTeardown(sub, a)
	}
}

func (a *app) teardown() error {
	if a.logger != nil {
		defer a.logger.Close()
	}
	if a.metricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.metricsFile); err != nil {
		return WrapExitError(ExitCommandError, "failed to write metrics", err)
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
