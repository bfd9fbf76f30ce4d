package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery DatasetSource

import (
	"context"
	"io"

	"cloud.google.com/go/bigquery"
)

// DatasetSource is a flat directory-like place holding dataset files.
type DatasetSource interface {
	// Location describes the source in logs, e.g. a directory path or gs://bucket/prefix.
	Location() string
	// List returns paths of the entries directly under the source whose extension is ext
	// (without leading dot, case-insensitive), sorted by name.
	List(ctx context.Context, ext string) ([]string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, rows []any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}
