package repository

import (
	"net/url"

	"github.com/m-mizutani/tabprep/pkg/domain/model"
)

// missingValueKey stands for the missing group in keys. Present values are never empty after escaping.
const missingValueKey = "~missing"

// CountKey identifies a record within a run. It is usable as a Firestore document ID: values are
// escaped so that '/' never appears.
func CountKey(record *model.CountRecord) string {
	value := missingValueKey
	if !record.Missing {
		value = "v:" + url.PathEscape(record.Value)
	}
	return url.PathEscape(record.Column) + ":" + value
}

// LessCount orders records of one column: missing first, then by value.
func LessCount(a, b *model.CountRecord) bool {
	if a.Missing != b.Missing {
		return a.Missing
	}
	return a.Value < b.Value
}
