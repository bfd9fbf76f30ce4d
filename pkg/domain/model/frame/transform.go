package frame

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

// CountColumn is the name of the count column produced by CountBy.
const CountColumn = "count"

// Flatten joins list cells of the given columns into one string per cell. Scalars are
// rendered as text and missing cells stay missing.
func (x *Frame) Flatten(sep string, columns ...string) (*Frame, error) {
	positions, err := x.positions(columns)
	if err != nil {
		return nil, err
	}

	out := x.clone()
	for _, row := range out.rows {
		for _, pos := range positions {
			switch val := row[pos].(type) {
			case []any:
				row[pos] = Join(val, sep)
			case []string:
				elems := make([]any, len(val))
				for i := range val {
					elems[i] = val[i]
				}
				row[pos] = Join(elems, sep)
			default:
				if !IsMissing(val) {
					row[pos] = String(val)
				}
			}
		}
	}

	return out, nil
}

// CoerceDigits converts the given columns to non-negative int64 values with Digits and drops
// every row where any of them has no value. It returns the cleaned frame and the number of
// dropped rows.
func (x *Frame) CoerceDigits(columns ...string) (*Frame, int, error) {
	positions, err := x.positions(columns)
	if err != nil {
		return nil, 0, err
	}

	out := &Frame{
		columns: x.Columns(),
		index:   x.index,
		rows:    make([][]any, 0, len(x.rows)),
	}

	dropped := 0
	for _, row := range x.rows {
		cleaned := append([]any(nil), row...)
		keep := true
		for _, pos := range positions {
			n, ok := Digits(row[pos])
			if !ok {
				keep = false
				break
			}
			cleaned[pos] = n
		}

		if !keep {
			dropped++
			continue
		}
		out.rows = append(out.rows, cleaned)
	}

	return out, dropped, nil
}

// CountBy groups rows by the value of column and returns a frame with columns
// [column, "count"], one row per distinct value. Missing values form their own group, sorted
// first; other groups are sorted by value.
func (x *Frame) CountBy(column string) (*Frame, error) {
	if column == CountColumn {
		return nil, goerr.Wrap(types.ErrInvalidOption, "cannot group by the count column", goerr.V("column", column))
	}
	pos, ok := x.index[column]
	if !ok {
		return nil, goerr.Wrap(types.ErrColumnNotFound, "column is not in frame", goerr.V("column", column))
	}

	type group struct {
		value any
		count int64
	}

	var (
		groups  []*group
		missing *group
		byKey   = map[string]*group{}
	)

	for _, row := range x.rows {
		v := row[pos]
		if IsMissing(v) {
			if missing == nil {
				missing = &group{}
			}
			missing.count++
			continue
		}

		key := groupKey(v)
		g, ok := byKey[key]
		if !ok {
			g = &group{value: v}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return less(groups[i].value, groups[j].value)
	})
	if missing != nil {
		groups = append([]*group{missing}, groups...)
	}

	rows := make([][]any, len(groups))
	for i, g := range groups {
		rows[i] = []any{g.value, g.count}
	}

	return New([]string{column, CountColumn}, rows...)
}

// groupKey separates values by type, so the number 3 and the text "3" are counted apart.
// Lists and objects are keyed by their JSON form.
func groupKey(v any) string {
	switch v.(type) {
	case []any, []string, map[string]any:
		if raw, err := json.Marshal(v); err == nil {
			return fmt.Sprintf("%T:%s", v, raw)
		}
	}
	return fmt.Sprintf("%T:%s", v, String(v))
}

func less(a, b any) bool {
	na, aok := a.(int64)
	nb, bok := b.(int64)
	if aok && bok {
		return na < nb
	}
	return String(a) < String(b)
}
