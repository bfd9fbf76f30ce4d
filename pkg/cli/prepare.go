package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/tabprep/pkg/cli/config"
	"github.com/m-mizutani/tabprep/pkg/infra"
	"github.com/m-mizutani/tabprep/pkg/usecase"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
	"github.com/m-mizutani/tabprep/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func (x *CLI) prepareCommand() *cli.Command {
	var (
		source    config.Source
		profile   config.Profile
		bigQuery  config.BigQuery
		firestore config.Firestore
		sentry    config.Sentry
		output    string
		format    string
		emit      string
	)

	return &cli.Command{
		Name:    "prepare",
		Aliases: []string{"p", "prep"},
		Usage:   "Project, flatten and clean the dataset, then count values of the group-by columns",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file [-|<file>]",
				Value:       "-",
				Sources:     cli.EnvVars("TABPREP_OUTPUT"),
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format [text|json|csv]",
				Value:       formatText,
				Sources:     cli.EnvVars("TABPREP_FORMAT"),
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "emit",
				Usage:       "What to output [counts|rows]",
				Value:       emitCounts,
				Sources:     cli.EnvVars("TABPREP_EMIT"),
				Destination: &emit,
			},
		}, source.Flags(), profile.Flags(), bigQuery.Flags(), firestore.Flags(), sentry.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if output == "" || output == "-" {
				var err error
				if ctx, err = x.separateLogs(ctx); err != nil {
					return err
				}
			}
			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			logging.From(ctx).Debug("Starting prepare",
				slog.Any("source", &source),
				slog.Any("profile", &profile),
				slog.Any("bigquery", &bigQuery),
				slog.Any("firestore", &firestore),
				slog.String("output", output),
				slog.String("format", format),
				slog.String("emit", emit),
			)

			return runPrepare(ctx, x.out, &source, &profile, &bigQuery, &firestore, output, format, emit)
		},
	}
}

func runPrepare(ctx context.Context, out io.Writer, source *config.Source, profileConfig *config.Profile, bigQuery *config.BigQuery, firestoreConfig *config.Firestore, output, format, emit string) error {
	if err := validateOutput(format, emit); err != nil {
		return err
	}
	profile, err := profileConfig.Build()
	if err != nil {
		return err
	}

	src, err := source.NewSource(ctx)
	if err != nil {
		return err
	}
	if closer, ok := src.(io.Closer); ok {
		defer safe.Close(closer)
	}

	// Create export clients if configured
	bqClient, err := bigQuery.NewClient(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create BigQuery client")
	}
	countRepo, err := firestoreConfig.NewRepository(ctx)
	if err != nil {
		return err
	}

	clientOpts := []infra.Option{
		infra.WithDatasetSource(src),
	}
	if bqClient != nil {
		clientOpts = append(clientOpts, infra.WithBigQuery(bqClient))
		if closer, ok := bqClient.(io.Closer); ok {
			defer safe.Close(closer)
		}
	}
	if countRepo != nil {
		clientOpts = append(clientOpts, infra.WithCountRepository(countRepo))
	}
	uc := usecase.New(infra.New(clientOpts...))

	result, err := uc.Prepare(ctx, *profile)
	if err != nil {
		return goerr.Wrap(err, "failed to prepare dataset")
	}

	w, closeOutput, err := openOutput(out, output)
	if err != nil {
		return err
	}
	defer closeOutput()

	if err := writeResult(w, result, profile.GroupBy, format, emit); err != nil {
		return err
	}

	if bqClient != nil || countRepo != nil {
		if err := uc.ExportCounts(ctx, result, profile.GroupBy); err != nil {
			return goerr.Wrap(err, "failed to export counts")
		}
	}

	return nil
}
