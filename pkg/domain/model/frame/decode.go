package frame

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

// listDataKey is the field that holds records when the file is a list object such as
// {"object": "list", "data": [...]} instead of a bare array.
const listDataKey = "data"

type recordSet struct {
	records []map[string]any
	columns []string
	seen    map[string]struct{}
}

func (x *recordSet) add(rec map[string]any, keys []string) {
	if x.seen == nil {
		x.seen = map[string]struct{}{}
	}
	for _, k := range keys {
		if _, ok := x.seen[k]; !ok {
			x.seen[k] = struct{}{}
			x.columns = append(x.columns, k)
		}
	}
	x.records = append(x.records, rec)
}

func (x *recordSet) frame() *Frame {
	return FromRecords(x.records, x.columns...)
}

// ReadJSON decodes an array of objects, or an object carrying the array in its "data" field.
// Numbers are kept as json.Number.
func ReadJSON(r io.Reader) (*Frame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to read JSON dataset")
	}

	var set recordSet
	switch tok {
	case json.Delim('['):
		if err := readArray(dec, &set); err != nil {
			return nil, err
		}

	case json.Delim('{'):
		found := false
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to read JSON object key")
			}
			if key, _ := keyTok.(string); key == listDataKey {
				open, err := dec.Token()
				if err != nil || open != json.Delim('[') {
					return nil, goerr.Wrap(types.ErrInvalidDataset, "data field is not an array")
				}
				if err := readArray(dec, &set); err != nil {
					return nil, err
				}
				found = true
				continue
			}

			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to skip JSON field")
			}
		}
		if !found {
			return nil, goerr.Wrap(types.ErrInvalidDataset, "JSON object has no data array")
		}

	default:
		return nil, goerr.Wrap(types.ErrInvalidDataset, "JSON dataset must be an array of objects", goerr.V("token", tok))
	}

	return set.frame(), nil
}

func readArray(dec *json.Decoder, set *recordSet) error {
	for i := 0; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to decode record", goerr.V("index", i))
		}
		rec, keys, err := decodeObject(raw)
		if err != nil {
			return goerr.Wrap(err, "invalid record", goerr.V("index", i))
		}
		set.add(rec, keys)
	}

	if _, err := dec.Token(); err != nil {
		return goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "unterminated JSON array")
	}
	return nil
}

// ReadJSONLines decodes one object per line.
func ReadJSONLines(r io.Reader) (*Frame, error) {
	dec := json.NewDecoder(r)

	var set recordSet
	for i := 0; ; i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to decode line", goerr.V("line", i+1))
		}

		rec, keys, err := decodeObject(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid record", goerr.V("line", i+1))
		}
		set.add(rec, keys)
	}

	return set.frame(), nil
}

// decodeObject decodes a single JSON object and returns its keys in document order.
func decodeObject(raw json.RawMessage) (map[string]any, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to read record")
	}
	if tok != json.Delim('{') {
		return nil, nil, goerr.Wrap(types.ErrInvalidDataset, "record is not an object", goerr.V("token", tok))
	}

	rec := map[string]any{}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to read field name")
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, goerr.Wrap(types.ErrInvalidDataset, "field name is not a string", goerr.V("token", keyTok))
		}

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to decode field", goerr.V("field", key))
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = v
	}

	return rec, keys, nil
}

// ReadCSV decodes a CSV file whose first record is the header. Cells are strings and empty
// cells are missing.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New(nil)
		}
		return nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to read CSV header")
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}

	var rows [][]any
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, goerr.Wrap(errors.Join(types.ErrInvalidDataset, err), "failed to read CSV record", goerr.V("line", line))
		}

		row := make([]any, len(record))
		for i, cell := range record {
			if cell != "" {
				row[i] = cell
			}
		}
		rows = append(rows, row)
	}

	return New(columns, rows...)
}
