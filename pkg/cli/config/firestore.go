package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/repository/firestore"
	"github.com/urfave/cli/v3"
)

type Firestore struct {
	projectID  string
	databaseID string
}

func (x *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Category:    "Firestore",
			Usage:       "Firestore project ID to store counts in (optional)",
			Sources:     cli.EnvVars("TABPREP_FIRESTORE_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Category:    "Firestore",
			Usage:       "Firestore database ID",
			Sources:     cli.EnvVars("TABPREP_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
			Destination: &x.databaseID,
		},
	}
}

func (x *Firestore) Enabled() bool {
	return x.projectID != ""
}

func (x *Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("databaseID", x.databaseID),
	)
}

// NewRepository returns nil without error when Firestore is not configured.
func (x *Firestore) NewRepository(ctx context.Context) (interfaces.CountRepository, error) {
	if !x.Enabled() {
		return nil, nil
	}

	databaseID := x.databaseID
	if databaseID == "(default)" {
		databaseID = ""
	}
	repo, err := firestore.New(ctx, x.projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore repository")
	}
	return repo, nil
}
