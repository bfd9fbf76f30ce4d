package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/repository"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionRun   = "run"
	collectionCount = "count"
	batchSize       = 500
)

type countRepository struct {
	client *firestore.Client
}

type runDoc struct {
	ID        types.RunID `firestore:"id"`
	Records   int         `firestore:"records"`
	UpdatedAt time.Time   `firestore:"updated_at,serverTimestamp"`
}

func (r *countRepository) PutCounts(ctx context.Context, runID types.RunID, records []*model.CountRecord) error {
	if runID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "run ID is empty")
	}

	runRef := r.client.Collection(collectionRun).Doc(runID.String())
	if _, err := runRef.Set(ctx, runDoc{
		ID:      runID,
		Records: len(records),
	}); err != nil {
		return goerr.Wrap(err, "failed to put run", goerr.V("runID", runID))
	}

	countCollection := runRef.Collection(collectionCount)

	// Process in batches of 500 (Firestore limit)
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))

		batch := r.client.Batch()
		for _, record := range records[i:end] {
			cpy := *record
			cpy.RunID = runID
			batch.Set(countCollection.Doc(repository.CountKey(record)), &cpy)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return goerr.Wrap(err, "failed to batch put counts",
				goerr.V("runID", runID),
				goerr.V("batchStart", i),
				goerr.V("batchEnd", end),
			)
		}
	}

	return nil
}

func (r *countRepository) ListCounts(ctx context.Context, runID types.RunID, column string) ([]*model.CountRecord, error) {
	runRef := r.client.Collection(collectionRun).Doc(runID.String())
	if _, err := runRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "run not found",
				goerr.V("runID", runID),
			)
		}
		return nil, goerr.Wrap(err, "failed to get run", goerr.V("runID", runID))
	}

	iter := runRef.Collection(collectionCount).Where("column", "==", column).Documents(ctx)
	defer iter.Stop()

	var records []*model.CountRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate counts",
				goerr.V("runID", runID),
				goerr.V("column", column),
			)
		}

		var record model.CountRecord
		if err := snap.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode count", goerr.V("docID", snap.Ref.ID))
		}
		records = append(records, &record)
	}

	sort.Slice(records, func(i, j int) bool {
		return repository.LessCount(records[i], records[j])
	})
	return records, nil
}
