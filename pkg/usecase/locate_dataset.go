package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
)

// Locate returns the path of the only file in source whose extension is ext. An empty ext means
// json. It fails with types.ErrFileMissing when there is no such file and with
// types.ErrAmbiguousFile when there are several.
func Locate(ctx context.Context, source interfaces.DatasetSource, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = model.DefaultExtension
	}

	paths, err := source.List(ctx, ext)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list dataset files",
			goerr.V("source", source.Location()),
			goerr.V("ext", ext),
		)
	}

	switch len(paths) {
	case 1:
		return paths[0], nil
	case 0:
		return "", goerr.Wrap(types.ErrFileMissing, "no file with the extension",
			goerr.V("source", source.Location()),
			goerr.V("ext", ext),
		)
	default:
		return "", goerr.Wrap(types.ErrAmbiguousFile, "several files with the extension",
			goerr.V("source", source.Location()),
			goerr.V("ext", ext),
			goerr.V("files", paths),
		)
	}
}

// FilePath is Locate in sentinel form: every failure is logged and "" is returned.
func FilePath(ctx context.Context, source interfaces.DatasetSource, ext string) string {
	path, err := Locate(ctx, source, ext)
	if err != nil {
		logger := logging.From(ctx)
		switch {
		case errors.Is(err, types.ErrFileMissing):
			logger.Warn("dataset file is missing", slog.Any("error", err))
		case errors.Is(err, types.ErrAmbiguousFile):
			logger.Warn("dataset file is ambiguous", slog.Any("error", err))
		default:
			logger.Error("failed to locate dataset file", slog.Any("error", err))
		}
		return ""
	}

	logging.From(ctx).Debug("dataset file located", slog.String("path", path))
	return path
}

// JSONFilePath is FilePath fixed to the json extension.
func JSONFilePath(ctx context.Context, source interfaces.DatasetSource) string {
	return FilePath(ctx, source, "json")
}

// Locate implements interfaces.UseCase with the configured dataset source.
func (x *UseCase) Locate(ctx context.Context, ext string) (string, error) {
	return Locate(ctx, x.clients.DatasetSource(), ext)
}
