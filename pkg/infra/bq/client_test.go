package bq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/infra/bq"
	"github.com/m-mizutani/tabprep/pkg/utils/safe"
	"github.com/m-mizutani/tabprep/pkg/utils/testutil"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("count_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)
	defer safe.Close(client)

	schema := gt.R1(bqs.Infer(model.CountRecord{})).NoError(t)

	t.Run("table does not exist yet", func(t *testing.T) {
		md := gt.R1(client.GetMetadata(ctx)).NoError(t)
		gt.V(t, md).Equal(nil)
	})

	t.Run("create table and insert counts", func(t *testing.T) {
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))

		now := time.Now()
		runID := types.NewRunID()
		rows := []any{
			(&model.CountRecord{RunID: runID, Column: "rarity", Value: "common", Count: 3, Timestamp: now}).Raw(),
			(&model.CountRecord{RunID: runID, Column: "rarity", Missing: true, Count: 1, Timestamp: now}).Raw(),
		}
		gt.NoError(t, client.Insert(ctx, schema, rows))
	})

	t.Run("empty rows are ignored", func(t *testing.T) {
		gt.NoError(t, client.Insert(ctx, schema, nil))
	})
}

func TestProtoFieldJSONName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps valid names",
			input: "edhrec_rank",
			want:  "edhrec_rank",
		},
		{
			name:  "renames invalid names",
			input: "ruby-advisory-db",
			want:  "col_cnVieS1hZHZpc29yeS1kYg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.V(t, bq.ProtoFieldJSONName(tc.input)).Equal(tc.want)
		})
	}
}

func TestSanitizeProtoJSON(t *testing.T) {
	raw := []byte(`{"counts":[{"set-name":"alpha","count":2}],"value":"x"}`)
	sanitized := gt.R1(bq.SanitizeProtoJSON(raw)).NoError(t)

	dec := json.NewDecoder(bytes.NewReader(sanitized))
	dec.UseNumber()
	payload := map[string]any{}
	gt.NoError(t, dec.Decode(&payload))
	gt.V(t, payload["value"]).Equal("x")

	counts, ok := payload["counts"].([]any)
	gt.True(t, ok)
	gt.A(t, counts).Length(1)

	entry, ok := counts[0].(map[string]any)
	gt.True(t, ok)
	gt.V(t, entry[bq.ProtoFieldJSONName("set-name")]).Equal("alpha")
	_, found := entry["set-name"]
	gt.False(t, found)
	gt.V(t, entry["count"]).Equal(json.Number("2"))
}

func TestIsSchemaMismatchError(t *testing.T) {
	const msg = "Input schema has more fields than BigQuery schema, extra fields: 'field1'"

	t.Run("gRPC InvalidArgument with schema mismatch message", func(t *testing.T) {
		gt.True(t, bq.IsSchemaMismatchError(status.Error(codes.InvalidArgument, msg)))
	})

	t.Run("wrapped by goerr", func(t *testing.T) {
		err := goerr.Wrap(goerr.Wrap(status.Error(codes.InvalidArgument, msg), "level 1"), "level 2")
		gt.True(t, bq.IsSchemaMismatchError(err))
	})

	t.Run("other message", func(t *testing.T) {
		gt.False(t, bq.IsSchemaMismatchError(status.Error(codes.InvalidArgument, "Invalid request parameters")))
	})

	t.Run("other code", func(t *testing.T) {
		gt.False(t, bq.IsSchemaMismatchError(status.Error(codes.PermissionDenied, msg)))
	})

	t.Run("not a gRPC error", func(t *testing.T) {
		gt.False(t, bq.IsSchemaMismatchError(errors.New("some other error")))
	})
}
