package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/infra/bq"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

type BigQuery struct {
	projectID                 string
	datasetID                 string
	tableID                   string
	impersonateServiceAccount string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID to export counts to",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("TABPREP_BIGQUERY_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("TABPREP_BIGQUERY_DATASET_ID"),
			Destination: &x.datasetID,
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Value:       "counts",
			Sources:     cli.EnvVars("TABPREP_BIGQUERY_TABLE_ID"),
			Destination: &x.tableID,
		},
		&cli.StringFlag{
			Name:        "bigquery-impersonate-service-account",
			Usage:       "Service account to impersonate when writing to BigQuery",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("TABPREP_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT"),
			Destination: &x.impersonateServiceAccount,
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != "" || x.datasetID != ""
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
		slog.String("impersonateServiceAccount", x.impersonateServiceAccount),
	)
}

// NewClient returns nil without error when BigQuery export is not configured.
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if !x.Enabled() {
		return nil, nil
	}
	if x.projectID == "" || x.datasetID == "" {
		return nil, goerr.New("both --bigquery-project-id and --bigquery-dataset-id are required",
			goerr.V("projectID", x.projectID),
			goerr.V("datasetID", x.datasetID),
		)
	}

	tableID := x.tableID
	if tableID == "" {
		tableID = "counts"
	}

	var options []option.ClientOption
	if x.impersonateServiceAccount != "" {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: x.impersonateServiceAccount,
			Scopes: []string{
				"https://www.googleapis.com/auth/bigquery",
				"https://www.googleapis.com/auth/cloud-platform",
			},
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create token source for impersonation",
				goerr.V("serviceAccount", x.impersonateServiceAccount),
			)
		}
		options = append(options, option.WithTokenSource(ts))
	}

	client, err := bq.New(ctx,
		types.GoogleProjectID(x.projectID),
		types.BQDatasetID(x.datasetID),
		types.BQTableID(tableID),
		options...,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client")
	}
	return client, nil
}
