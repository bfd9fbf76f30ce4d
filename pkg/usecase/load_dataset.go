package usecase

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/model/frame"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
	"github.com/m-mizutani/tabprep/pkg/utils/safe"
)

// Dataset formats accepted by LoadDataset.
const (
	FormatJSON      = "json"
	FormatJSONLines = "jsonl"
	FormatNDJSON    = "ndjson"
	FormatCSV       = "csv"
)

// LoadDataset decodes a dataset in format into a frame.
func LoadDataset(ctx context.Context, r io.Reader, format string) (*frame.Frame, error) {
	var (
		f   *frame.Frame
		err error
	)

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case FormatJSON:
		f, err = frame.ReadJSON(r)
	case FormatJSONLines, FormatNDJSON:
		f, err = frame.ReadJSONLines(r)
	case FormatCSV:
		f, err = frame.ReadCSV(r)
	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "unsupported dataset format", goerr.V("format", format))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("format", format))
	}

	logging.From(ctx).Debug("dataset loaded",
		slog.Int("rows", f.Len()),
		slog.Int("columns", len(f.Columns())),
	)
	return f, nil
}

// LoadDatasetFromFile loads a local dataset file. The format is taken from the file extension.
func LoadDatasetFromFile(ctx context.Context, path string) (*frame.Frame, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open dataset file", goerr.V("path", path))
	}
	defer safe.Close(fd)

	return LoadDataset(ctx, fd, filepath.Ext(path))
}

// Subset projects exactly columns, in that order. Row count is unchanged.
func Subset(ctx context.Context, f *frame.Frame, columns []string) (*frame.Frame, error) {
	subset, err := f.Select(columns...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to project dataset",
			goerr.V("columns", columns),
			goerr.V("available", f.Columns()),
		)
	}
	return subset, nil
}

// LoadSubset locates the dataset in source, loads it and projects the profile columns. It returns
// the projected frame and the located path. When no single dataset file can be located it fails
// with types.ErrDatasetUnavailable.
func LoadSubset(ctx context.Context, source interfaces.DatasetSource, profile model.Profile) (*frame.Frame, string, error) {
	path := FilePath(ctx, source, profile.Ext())
	if path == "" {
		return nil, "", goerr.Wrap(types.ErrDatasetUnavailable, "dataset file is not located",
			goerr.V("source", source.Location()),
			goerr.V("ext", profile.Ext()),
		)
	}

	r, err := source.Open(ctx, path)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to open dataset", goerr.V("path", path))
	}
	defer safe.Close(r)

	f, err := LoadDataset(ctx, r, profile.Ext())
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to load dataset", goerr.V("path", path))
	}

	subset, err := Subset(ctx, f, profile.Columns)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to load subset", goerr.V("path", path))
	}
	return subset, path, nil
}
