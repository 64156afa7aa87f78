package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/jwtlab/pkg/config"
	"github.com/dmitrymomot/jwtlab/pkg/logger"
)

// cliConfig is read from the environment (and ./.env) before any command runs.
type cliConfig struct {
	Env       string `env:"JWTLAB_ENV" envDefault:"development"`
	LogLevel  string `env:"JWTLAB_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"JWTLAB_LOG_FORMAT" envDefault:"text"`
	Workers   int    `env:"JWTLAB_WORKERS" envDefault:"1"`
}

// app carries what every subcommand needs once the root pre-run is done.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg     cliConfig
	log     *slog.Logger
	verbose bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, log: logger.Discard()}

	root := &cobra.Command{
		Use:           "jwtlab",
		Short:         "Sign, verify, crack and forge HMAC-signed tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError("unknown command %q", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return usageError("a command is required")
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newCrackCmd(a),
		newForgeCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
	)
	return root
}

// setup loads cliConfig and builds the logger. Logs go to stderr so that
// stdout carries only results.
func (a *app) setup() error {
	if err := config.Load(&a.cfg); err != nil {
		return err
	}

	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return errors.Join(config.ErrParsingConfig, err)
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	format, err := logger.ParseFormat(a.cfg.LogFormat)
	if err != nil {
		return errors.Join(config.ErrParsingConfig, err)
	}

	a.log = logger.New(
		logger.WithEnvironment(a.cfg.Env, "jwtlab"),
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(a.stderr),
	)
	return nil
}

// exactArgs is cobra.ExactArgs with a usage exit status.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &exitError{code: exitUsage, err: err}
		}
		return nil
	}
}
