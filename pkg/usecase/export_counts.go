package usecase

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
)

// ExportCounts writes the grouped counts of result to BigQuery and to the count repository,
// whichever is configured.
func (x *UseCase) ExportCounts(ctx context.Context, result *model.Result, groupBy []string) error {
	records := result.CountRecords(groupBy)
	if len(records) == 0 {
		logging.From(ctx).Info("no counts to export", slog.String("run_id", result.RunID.String()))
		return nil
	}

	// Insert to BigQuery
	if x.clients.BigQuery() != nil {
		schema, err := createOrUpdateBigQueryTable(ctx, x.clients.BigQuery(), &model.CountRecord{})
		if err != nil {
			return err
		}

		rows := make([]any, len(records))
		for i, record := range records {
			rows[i] = record.Raw()
		}
		if err := x.clients.BigQuery().Insert(ctx, schema, rows); err != nil {
			return goerr.Wrap(err, "failed to insert counts to BigQuery", goerr.V("runID", result.RunID))
		}
		logging.From(ctx).Info("counts inserted to BigQuery", slog.Int("records", len(rows)))
	}

	// Insert to Firestore
	if x.clients.CountRepository() != nil {
		if err := x.clients.CountRepository().PutCounts(ctx, result.RunID, records); err != nil {
			return goerr.Wrap(err, "failed to put counts", goerr.V("runID", result.RunID))
		}
		logging.From(ctx).Info("counts stored", slog.Int("records", len(records)))
	}

	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, record *model.CountRecord) (bigquery.Schema, error) {
	schema, err := bqs.Infer(record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer count schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
