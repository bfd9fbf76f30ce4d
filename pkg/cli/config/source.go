package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/infra/fs"
	"github.com/m-mizutani/tabprep/pkg/infra/gcs"
	"github.com/urfave/cli/v3"
)

// Source selects where the dataset file is looked up: a local directory or a Cloud Storage prefix.
type Source struct {
	dir       string
	gcsBucket string
	gcsPrefix string
}

func (x *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Directory holding the dataset file",
			Category:    "Source",
			Value:       ".",
			Sources:     cli.EnvVars("TABPREP_DIR"),
			Destination: &x.dir,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket holding the dataset file (instead of --dir)",
			Category:    "Source",
			Sources:     cli.EnvVars("TABPREP_GCS_BUCKET"),
			Destination: &x.gcsBucket,
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object prefix in the bucket, used like a directory",
			Category:    "Source",
			Sources:     cli.EnvVars("TABPREP_GCS_PREFIX"),
			Destination: &x.gcsPrefix,
		},
	}
}

func (x *Source) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", x.dir),
		slog.String("gcsBucket", x.gcsBucket),
		slog.String("gcsPrefix", x.gcsPrefix),
	)
}

// NewSource returns the Cloud Storage source when a bucket is given, otherwise the local directory.
func (x *Source) NewSource(ctx context.Context) (interfaces.DatasetSource, error) {
	if x.gcsBucket == "" {
		if x.gcsPrefix != "" {
			return nil, goerr.New("--gcs-prefix requires --gcs-bucket")
		}
		return fs.New(x.dir), nil
	}

	src, err := gcs.New(ctx, x.gcsBucket, x.gcsPrefix)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage source")
	}
	return src, nil
}
