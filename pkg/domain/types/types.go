package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	RunID           string
	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
	SentryDSN       string
)

func NewRunID() RunID { return RunID(uuid.NewString()) }
func (x RunID) String() string { return string(x) }

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string { return string(x) }
func (x BQTableID) String() string { return string(x) }

func (x SentryDSN) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x SentryDSN) String() string {
	return "***********"
}
