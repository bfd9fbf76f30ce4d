package frame

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
)

// WriteJSON writes the frame as an array of objects. Keys keep the column order.
func (x *Frame) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range x.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for pos, c := range x.columns {
			if pos > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(c)
			if err != nil {
				return goerr.Wrap(err, "failed to encode column name", goerr.V("column", c))
			}
			value, err := json.Marshal(row[pos])
			if err != nil {
				return goerr.Wrap(err, "failed to encode cell", goerr.V("column", c), goerr.V("row", i))
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return goerr.Wrap(err, "failed to write JSON")
	}
	return nil
}

// WriteCSV writes a header record followed by one record per row.
func (x *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(x.columns); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	record := make([]string, len(x.columns))
	for i, row := range x.rows {
		for pos := range x.columns {
			record[pos] = String(row[pos])
		}
		if err := cw.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV record", goerr.V("row", i))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}

// WriteTable writes an aligned plain-text table.
func (x *Frame) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for pos, c := range x.columns {
		if pos > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw)

	for _, row := range x.rows {
		for pos := range x.columns {
			if pos > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, String(row[pos]))
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write table")
	}
	return nil
}
