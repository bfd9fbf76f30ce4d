package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/repository"
)

type countRepository struct {
	mu sync.RWMutex
	// run ID -> record key -> record
	runs map[string]map[string]*model.CountRecord
}

func (r *countRepository) PutCounts(ctx context.Context, runID types.RunID, records []*model.CountRecord) error {
	if runID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "run ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	run, exists := r.runs[runID.String()]
	if !exists {
		run = make(map[string]*model.CountRecord)
		r.runs[runID.String()] = run
	}

	for _, record := range records {
		cpy := *record
		cpy.RunID = runID
		run[repository.CountKey(record)] = &cpy
	}

	return nil
}

func (r *countRepository) ListCounts(ctx context.Context, runID types.RunID, column string) ([]*model.CountRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.runs[runID.String()]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "run not found",
			goerr.V("runID", runID),
		)
	}

	var records []*model.CountRecord
	for _, record := range run {
		if record.Column == column {
			cpy := *record
			records = append(records, &cpy)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return repository.LessCount(records[i], records[j])
	})
	return records, nil
}
