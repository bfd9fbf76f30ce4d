package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/tabprep/pkg/cli/config"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/usecase"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
	"github.com/m-mizutani/tabprep/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func (x *CLI) locateCommand() *cli.Command {
	var (
		source config.Source
		ext    string
	)

	return &cli.Command{
		Name:    "locate",
		Aliases: []string{"l"},
		Usage:   "Print the path of the only dataset file with the extension",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "ext",
				Aliases:     []string{"e"},
				Usage:       "Extension of the dataset file",
				Value:       model.DefaultExtension,
				Sources:     cli.EnvVars("TABPREP_EXT"),
				Destination: &ext,
			},
		}, source.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := x.separateLogs(ctx)
			if err != nil {
				return err
			}
			logging.From(ctx).Debug("Starting locate", slog.Any("source", &source), slog.String("ext", ext))

			src, err := source.NewSource(ctx)
			if err != nil {
				return err
			}
			if closer, ok := src.(io.Closer); ok {
				defer safe.Close(closer)
			}

			path, err := usecase.Locate(ctx, src, ext)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(x.out, path); err != nil {
				return goerr.Wrap(err, "failed to write path")
			}
			return nil
		},
	}
}
