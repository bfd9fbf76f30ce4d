package interfaces

import (
	"context"

	"github.com/m-mizutani/tabprep/pkg/domain/model"
)

type UseCase interface {
	Locate(ctx context.Context, ext string) (string, error)
	Prepare(ctx context.Context, profile model.Profile) (*model.Result, error)
	ExportCounts(ctx context.Context, result *model.Result, groupBy []string) error
}
