package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/tabprep/pkg/utils/errutil"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type CLI struct {
	out    io.Writer
	errOut io.Writer

	logLevel  string
	logFormat string
	logOutput string
}

type Option func(*CLI)

// WithOutput replaces stdout as the destination of command results.
func WithOutput(w io.Writer) Option {
	return func(x *CLI) {
		x.out = w
	}
}

// WithErrOutput replaces stderr as the destination of logs moved off the result output.
func WithErrOutput(w io.Writer) Option {
	return func(x *CLI) {
		x.errOut = w
	}
}

func New(options ...Option) *CLI {
	x := &CLI{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *CLI) Run(argv []string) error {
	app := &cli.Command{
		Name:  "tabprep",
		Usage: "Locate, clean and summarize a tabular card dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [debug|info|warn|error]",
				Aliases:     []string{"l"},
				Sources:     cli.EnvVars("TABPREP_LOG_LEVEL"),
				Destination: &x.logLevel,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Aliases:     []string{"f"},
				Sources:     cli.EnvVars("TABPREP_LOG_FORMAT"),
				Destination: &x.logFormat,
				Value:       "text",
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [-|stdout|stderr|<file>]",
				Sources:     cli.EnvVars("TABPREP_LOG_OUTPUT"),
				Destination: &x.logOutput,
				Value:       "-",
			},
		},
		Commands: []*cli.Command{
			x.locateCommand(),
			x.prepareCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := x.configureLogging(); err != nil {
				return ctx, err
			}
			return logging.With(ctx, logging.Default()), nil
		},
	}
	defer sentry.Flush(2 * time.Second)

	ctx := context.Background()
	if err := app.Run(ctx, argv); err != nil {
		errutil.HandleError(ctx, "fatal error", err)
		return err
	}

	return nil
}

func (x *CLI) configureLogging() error {
	if logging.IsStdout(x.logOutput) {
		return logging.ConfigureWriter(x.logFormat, x.logLevel, x.out)
	}
	if x.logOutput == "stderr" {
		return logging.ConfigureWriter(x.logFormat, x.logLevel, x.errOut)
	}
	return logging.Configure(x.logFormat, x.logLevel, x.logOutput)
}

// separateLogs moves logs configured for stdout to the error output while command results
// are written to stdout.
func (x *CLI) separateLogs(ctx context.Context) (context.Context, error) {
	if !logging.IsStdout(x.logOutput) {
		return ctx, nil
	}

	level, err := logging.ParseLevel(x.logLevel)
	if err != nil {
		return ctx, err
	}
	logger, err := logging.New(x.errOut, x.logFormat, level)
	if err != nil {
		return ctx, err
	}
	return logging.With(ctx, logger), nil
}
