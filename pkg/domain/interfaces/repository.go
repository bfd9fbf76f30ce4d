package interfaces

import (
	"context"

	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

// CountRepository stores grouped counts per run.
type CountRepository interface {
	// PutCounts stores records of one run. Putting the same column and value twice overwrites it.
	PutCounts(ctx context.Context, runID types.RunID, records []*model.CountRecord) error
	// ListCounts returns the records of one column in a run, sorted by value.
	ListCounts(ctx context.Context, runID types.RunID, column string) ([]*model.CountRecord, error)
}
