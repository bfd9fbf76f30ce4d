// Package frame provides a small column-ordered table used by the dataset pipeline.
// A cell holds any value decoded from the source file; nil marks a missing value.
package frame

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

// Frame is an immutable table. Every operation returns a new Frame and leaves the receiver untouched.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates a Frame from column names and row values. Every row must have one value per column.
func New(columns []string, rows ...[]any) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; ok {
			return nil, goerr.Wrap(types.ErrInvalidDataset, "duplicated column", goerr.V("column", c))
		}
		index[c] = i
	}

	copied := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, goerr.Wrap(types.ErrInvalidDataset, "row width does not match columns",
				goerr.V("row", i),
				goerr.V("width", len(row)),
				goerr.V("columns", len(columns)),
			)
		}
		copied[i] = append([]any(nil), row...)
	}

	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

// FromRecords builds a Frame from decoded objects. The given columns come first in order; keys
// not listed are appended in sorted order. Keys absent from a record become missing cells.
func FromRecords(records []map[string]any, columns ...string) *Frame {
	f := &Frame{index: map[string]int{}}

	addColumn := func(c string) {
		if _, ok := f.index[c]; !ok {
			f.index[c] = len(f.columns)
			f.columns = append(f.columns, c)
		}
	}

	for _, c := range columns {
		addColumn(c)
	}
	for _, rec := range records {
		for _, k := range sortedKeys(rec) {
			addColumn(k)
		}
	}

	f.rows = make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(f.columns))
		for k, v := range rec {
			row[f.index[k]] = v
		}
		f.rows[i] = row
	}

	return f
}

// Columns returns a copy of the column names in order.
func (x *Frame) Columns() []string {
	return append([]string(nil), x.columns...)
}

// Len returns the number of rows.
func (x *Frame) Len() int {
	return len(x.rows)
}

func (x *Frame) Has(column string) bool {
	_, ok := x.index[column]
	return ok
}

// Value returns the cell at row i in column. The second value is false when the column or row does not exist.
func (x *Frame) Value(i int, column string) (any, bool) {
	pos, ok := x.index[column]
	if !ok || i < 0 || i >= len(x.rows) {
		return nil, false
	}
	return x.rows[i][pos], true
}

// Column returns all values of a column.
func (x *Frame) Column(column string) ([]any, error) {
	pos, ok := x.index[column]
	if !ok {
		return nil, goerr.Wrap(types.ErrColumnNotFound, "column is not in frame", goerr.V("column", column))
	}

	values := make([]any, len(x.rows))
	for i, row := range x.rows {
		values[i] = row[pos]
	}
	return values, nil
}

// Record returns row i as a map keyed by column name.
func (x *Frame) Record(i int) map[string]any {
	if i < 0 || i >= len(x.rows) {
		return nil
	}
	rec := make(map[string]any, len(x.columns))
	for pos, c := range x.columns {
		rec[c] = x.rows[i][pos]
	}
	return rec
}

// Select projects the given columns in the given order. The row count is unchanged.
func (x *Frame) Select(columns ...string) (*Frame, error) {
	positions := make([]int, len(columns))
	for i, c := range columns {
		pos, ok := x.index[c]
		if !ok {
			return nil, goerr.Wrap(types.ErrColumnNotFound, "column is not in dataset",
				goerr.V("column", c),
				goerr.V("available", x.columns),
			)
		}
		positions[i] = pos
	}

	rows := make([][]any, len(x.rows))
	for i, row := range x.rows {
		projected := make([]any, len(positions))
		for j, pos := range positions {
			projected[j] = row[pos]
		}
		rows[i] = projected
	}

	return New(columns, rows...)
}

func (x *Frame) positions(columns []string) ([]int, error) {
	positions := make([]int, 0, len(columns))
	for _, c := range columns {
		pos, ok := x.index[c]
		if !ok {
			return nil, goerr.Wrap(types.ErrColumnNotFound, "column is not in frame", goerr.V("column", c))
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (x *Frame) clone() *Frame {
	rows := make([][]any, len(x.rows))
	for i, row := range x.rows {
		rows[i] = append([]any(nil), row...)
	}
	return &Frame{
		columns: x.Columns(),
		index:   x.index,
		rows:    rows,
	}
}

func sortedKeys(rec map[string]any) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
