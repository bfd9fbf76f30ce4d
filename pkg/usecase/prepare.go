package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/model/frame"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
)

// Prepare runs locate, project, flatten, clean and count over the dataset in source.
func Prepare(ctx context.Context, source interfaces.DatasetSource, profile model.Profile) (*model.Result, error) {
	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid profile")
	}

	runID, ctx := logging.CtxRunID(ctx)
	logger := logging.From(ctx).With(slog.String("run_id", runID.String()))
	ctx = logging.With(ctx, logger)

	result := &model.Result{
		RunID:   runID,
		Started: logging.CtxTime(ctx),
		Counts:  make(map[string]*frame.Frame, len(profile.GroupBy)),
	}

	subset, path, err := LoadSubset(ctx, source, profile)
	if err != nil {
		return nil, err
	}
	result.Path = path
	result.Source = subset.Len()

	flattened, err := subset.Flatten(profile.Separator, profile.ListColumns...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to flatten list columns", goerr.V("columns", profile.ListColumns))
	}

	cleaned, dropped, err := flattened.CoerceDigits(profile.NumericColumns...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to clean numeric columns", goerr.V("columns", profile.NumericColumns))
	}
	result.Frame = cleaned
	result.Dropped = dropped

	for _, column := range profile.GroupBy {
		counts, err := cleaned.CountBy(column)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count values", goerr.V("column", column))
		}
		result.Counts[column] = counts
	}

	logger.Info("dataset prepared",
		slog.String("path", path),
		slog.Int("source_rows", result.Source),
		slog.Int("dropped_rows", dropped),
		slog.Int("rows", cleaned.Len()),
	)

	return result, nil
}

// Prepare implements interfaces.UseCase with the configured dataset source.
func (x *UseCase) Prepare(ctx context.Context, profile model.Profile) (*model.Result, error) {
	return Prepare(ctx, x.clients.DatasetSource(), profile)
}
