package model

import (
	"time"

	"github.com/m-mizutani/tabprep/pkg/domain/model/frame"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

// Result is the outcome of one pipeline run.
type Result struct {
	RunID   types.RunID
	Path    string
	Source  int
	Dropped int
	Frame   *frame.Frame
	Counts  map[string]*frame.Frame
	Started time.Time
}

// CountRecord is one grouped count, flattened for export.
type CountRecord struct {
	RunID     types.RunID `bigquery:"run_id" json:"run_id" firestore:"run_id"`
	Dataset   string      `bigquery:"dataset" json:"dataset" firestore:"dataset"`
	Column    string      `bigquery:"column" json:"column" firestore:"column"`
	Value     string      `bigquery:"value" json:"value" firestore:"value"`
	Missing   bool        `bigquery:"missing" json:"missing" firestore:"missing"`
	Count     int64       `bigquery:"count" json:"count" firestore:"count"`
	Timestamp time.Time   `bigquery:"timestamp" json:"timestamp" firestore:"timestamp"`
}

// CountRawRecord is the row written through the storage write API, which takes timestamps
// in microseconds. The table schema is inferred from CountRecord.
type CountRawRecord struct {
	CountRecord
	Timestamp int64 `bigquery:"timestamp" json:"timestamp"`
}

// Raw converts the record to the row shape of the storage write API.
func (x *CountRecord) Raw() *CountRawRecord {
	return &CountRawRecord{
		CountRecord: *x,
		Timestamp:   x.Timestamp.UnixMicro(),
	}
}

// CountRecords flattens the grouped counts of a result, ordered by group-by column and then
// by the order of the count frame. Groups whose values render as the same text, such as the
// number 3 and the string "3", are merged into one record.
func (x *Result) CountRecords(groupBy []string) []*CountRecord {
	var records []*CountRecord
	for _, column := range groupBy {
		counts, ok := x.Counts[column]
		if !ok {
			continue
		}
		seen := make(map[string]*CountRecord, counts.Len())
		for i := 0; i < counts.Len(); i++ {
			value, _ := counts.Value(i, column)
			count, _ := counts.Value(i, frame.CountColumn)
			n, _ := count.(int64)

			key := frame.String(value)
			if frame.IsMissing(value) {
				key = "\x00missing"
			}
			if r, ok := seen[key]; ok {
				r.Count += n
				continue
			}

			record := &CountRecord{
				RunID:     x.RunID,
				Dataset:   x.Path,
				Column:    column,
				Value:     frame.String(value),
				Missing:   frame.IsMissing(value),
				Count:     n,
				Timestamp: x.Started,
			}
			seen[key] = record
			records = append(records, record)
		}
	}
	return records
}
