package gcs_test

import (
	"context"
	"io"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/infra/gcs"
	"github.com/m-mizutani/tabprep/pkg/utils/safe"
	"github.com/m-mizutani/tabprep/pkg/utils/testutil"
)

func TestNormalizePrefix(t *testing.T) {
	gt.V(t, gcs.NormalizePrefix("")).Equal("")
	gt.V(t, gcs.NormalizePrefix("/")).Equal("")
	gt.V(t, gcs.NormalizePrefix("data")).Equal("data/")
	gt.V(t, gcs.NormalizePrefix("/data/cards/")).Equal("data/cards/")
}

func TestMatchExt(t *testing.T) {
	testCases := map[string]struct {
		name   string
		suffix string
		want   bool
	}{
		"exact":         {name: "data/cards.json", suffix: ".json", want: true},
		"upper case":    {name: "data/cards.JSON", suffix: ".json", want: true},
		"other ext":     {name: "data/cards.jsonl", suffix: ".json", want: false},
		"hidden object": {name: "data/.cards.json", suffix: ".json", want: false},
		"directory":     {name: "data/x.json/", suffix: ".json", want: false},
		"no extension":  {name: "data/json", suffix: ".json", want: false},
	}

	for title, tc := range testCases {
		t.Run(title, func(t *testing.T) {
			gt.V(t, gcs.MatchExt(tc.name, tc.suffix)).Equal(tc.want)
		})
	}
}

func TestParseURL(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		bucket, object, err := gcs.ParseURL("gs://my-bucket/data/cards.json")
		gt.NoError(t, err)
		gt.V(t, bucket).Equal("my-bucket")
		gt.V(t, object).Equal("data/cards.json")
	})

	t.Run("invalid", func(t *testing.T) {
		for _, url := range []string{
			"cards.json",
			"gs://my-bucket",
			"gs://my-bucket/",
			"gs:///cards.json",
			"s3://my-bucket/cards.json",
		} {
			_, _, err := gcs.ParseURL(url)
			gt.Error(t, err)
		}
	})
}

func TestSource(t *testing.T) {
	bucket := testutil.GetEnvOrSkip(t, "TEST_GCS_BUCKET")
	prefix := testutil.GetEnvOrSkip(t, "TEST_GCS_PREFIX")

	ctx := context.Background()
	src := gt.R1(gcs.New(ctx, bucket, prefix)).NoError(t)
	defer safe.Close(src)

	paths := gt.R1(src.List(ctx, "json")).NoError(t)
	for _, p := range paths {
		r := gt.R1(src.Open(ctx, p)).NoError(t)
		_ = gt.R1(io.ReadAll(r)).NoError(t)
		safe.Close(r)
	}
}
