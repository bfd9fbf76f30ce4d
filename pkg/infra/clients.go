package infra

import (
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/infra/fs"
)

type Clients struct {
	source          interfaces.DatasetSource
	bqClient        interfaces.BigQuery
	countRepository interfaces.CountRepository
}

type Option func(*Clients)

// New creates clients. Without WithDatasetSource, datasets are looked up in the working directory.
func New(options ...Option) *Clients {
	client := &Clients{
		source: fs.New("."),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) DatasetSource() interfaces.DatasetSource {
	return x.source
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) CountRepository() interfaces.CountRepository {
	return x.countRepository
}

func WithDatasetSource(source interfaces.DatasetSource) Option {
	return func(x *Clients) {
		x.source = source
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithCountRepository(repo interfaces.CountRepository) Option {
	return func(x *Clients) {
		x.countRepository = repo
	}
}
