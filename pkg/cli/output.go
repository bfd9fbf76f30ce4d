package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/model/frame"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/utils/safe"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"

	emitCounts = "counts"
	emitRows   = "rows"
)

func validateOutput(format, emit string) error {
	switch format {
	case formatText, formatJSON, formatCSV:
	default:
		return goerr.Wrap(types.ErrInvalidOption, "unknown output format", goerr.V("format", format))
	}
	switch emit {
	case emitCounts, emitRows:
	default:
		return goerr.Wrap(types.ErrInvalidOption, "unknown emit target", goerr.V("emit", emit))
	}
	return nil
}

// openOutput returns out for "" or "-", otherwise a created file. The returned function closes it.
func openOutput(out io.Writer, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return out, func() {}, nil
	}

	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	return fd, func() { safe.Close(fd) }, nil
}

// writeResult writes either the grouped counts or the cleaned rows of result in format.
func writeResult(w io.Writer, result *model.Result, groupBy []string, format, emit string) error {
	switch emit {
	case emitRows:
		return writeFrame(w, result.Frame, format)
	case emitCounts:
		return writeCounts(w, result, groupBy, format)
	default:
		return goerr.Wrap(types.ErrInvalidOption, "unknown emit target", goerr.V("emit", emit))
	}
}

func writeFrame(w io.Writer, f *frame.Frame, format string) error {
	switch format {
	case formatText:
		return f.WriteTable(w)
	case formatJSON:
		return f.WriteJSON(w)
	case formatCSV:
		return f.WriteCSV(w)
	default:
		return goerr.Wrap(types.ErrInvalidOption, "unknown output format", goerr.V("format", format))
	}
}

func writeCounts(w io.Writer, result *model.Result, groupBy []string, format string) error {
	switch format {
	case formatText:
		written := false
		for _, column := range groupBy {
			counts, ok := result.Counts[column]
			if !ok {
				continue
			}
			if written {
				if _, err := fmt.Fprintln(w); err != nil {
					return goerr.Wrap(err, "failed to write counts")
				}
			}
			if err := counts.WriteTable(w); err != nil {
				return err
			}
			written = true
		}
		return nil

	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		records := result.CountRecords(groupBy)
		if records == nil {
			records = []*model.CountRecord{}
		}
		if err := enc.Encode(records); err != nil {
			return goerr.Wrap(err, "failed to write counts")
		}
		return nil

	case formatCSV:
		return countFrame(result.CountRecords(groupBy)).WriteCSV(w)

	default:
		return goerr.Wrap(types.ErrInvalidOption, "unknown output format", goerr.V("format", format))
	}
}

// countFrame lays out count records of several columns in one frame. Missing values stay empty.
func countFrame(records []*model.CountRecord) *frame.Frame {
	rows := make([]map[string]any, len(records))
	for i, r := range records {
		var value any
		if !r.Missing {
			value = r.Value
		}
		rows[i] = map[string]any{
			"column":          r.Column,
			"value":           value,
			frame.CountColumn: r.Count,
		}
	}
	return frame.FromRecords(rows, "column", "value", frame.CountColumn)
}
