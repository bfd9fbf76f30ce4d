package infra_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/domain/mock"
	"github.com/m-mizutani/tabprep/pkg/infra"
	"github.com/m-mizutani/tabprep/pkg/repository/memory"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		// Local working directory is the default source
		gt.V(t, clients.DatasetSource().Location()).Equal(".")
		gt.V(t, clients.BigQuery()).Equal(nil)
		gt.V(t, clients.CountRepository()).Equal(nil)
	})

	t.Run("WithDatasetSource option sets source", func(t *testing.T) {
		src := &mock.DatasetSourceMock{
			LocationFunc: func() string { return "gs://bucket/data/" },
		}
		clients := infra.New(infra.WithDatasetSource(src))
		gt.V(t, clients.DatasetSource().Location()).Equal("gs://bucket/data/")
	})

	t.Run("WithBigQuery option sets BigQuery client", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{}
		clients := infra.New(infra.WithBigQuery(mockBQ))
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{}
		repo := memory.New()

		clients := infra.New(
			infra.WithBigQuery(mockBQ),
			infra.WithCountRepository(repo),
		)

		gt.V(t, clients.BigQuery()).Equal(mockBQ)
		gt.V(t, clients.CountRepository()).Equal(repo)
	})
}
