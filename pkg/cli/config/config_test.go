package config_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/cli/config"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/infra/fs"
	"github.com/m-mizutani/tabprep/pkg/utils/testutil"
	"github.com/urfave/cli/v3"
)

// parse runs a command with flags and args so that flag destinations are filled.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestProfileBuild(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var profile config.Profile
		parse(t, profile.Flags())

		p := gt.R1(profile.Build()).NoError(t)
		gt.V(t, p.Columns).Equal(model.SignificantColumns)
		gt.V(t, p.Ext()).Equal("json")
		gt.V(t, p.Separator).Equal(model.DefaultSeparator)
	})

	t.Run("flags override", func(t *testing.T) {
		var profile config.Profile
		parse(t, profile.Flags(),
			"--ext", "csv",
			"--column", "name",
			"--column", "rarity",
			"--column", "cmc",
			"--numeric-column", "cmc",
			"--list-column", "name",
			"--group-by", "cmc",
			"--separator", "|",
		)

		p := gt.R1(profile.Build()).NoError(t)
		gt.V(t, p.Ext()).Equal("csv")
		gt.V(t, p.Columns).Equal([]string{"name", "rarity", "cmc"})
		gt.V(t, p.NumericColumns).Equal([]string{"cmc"})
		gt.V(t, p.ListColumns).Equal([]string{"name"})
		gt.V(t, p.GroupBy).Equal([]string{"cmc"})
		gt.V(t, p.Separator).Equal("|")
	})

	t.Run("file with flag override", func(t *testing.T) {
		dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
			"profile.yaml": "extension: jsonl\ncolumns: [name, set, rarity]\nlist_columns: []\nnumeric_columns: []\ngroup_by: [set]\n",
		})

		var profile config.Profile
		parse(t, profile.Flags(),
			"--profile", filepath.Join(dir, "profile.yaml"),
			"--group-by", "rarity",
		)

		p := gt.R1(profile.Build()).NoError(t)
		gt.V(t, p.Ext()).Equal("jsonl")
		gt.V(t, p.Columns).Equal([]string{"name", "set", "rarity"})
		gt.V(t, p.GroupBy).Equal([]string{"rarity"})
	})

	t.Run("invalid combination", func(t *testing.T) {
		var profile config.Profile
		parse(t, profile.Flags(), "--column", "name", "--group-by", "rarity")

		_, err := profile.Build()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("missing profile file", func(t *testing.T) {
		var profile config.Profile
		parse(t, profile.Flags(), "--profile", filepath.Join(t.TempDir(), "none.yaml"))

		_, err := profile.Build()
		gt.Error(t, err)
	})
}

func TestSourceNewSource(t *testing.T) {
	ctx := context.Background()

	t.Run("local directory", func(t *testing.T) {
		dir := t.TempDir()
		var source config.Source
		parse(t, source.Flags(), "--dir", dir)

		src := gt.R1(source.NewSource(ctx)).NoError(t)
		_, ok := src.(*fs.Source)
		gt.True(t, ok)
		gt.V(t, src.Location()).Equal(dir)
	})

	t.Run("prefix without bucket", func(t *testing.T) {
		var source config.Source
		parse(t, source.Flags(), "--gcs-prefix", "data")

		_, err := source.NewSource(ctx)
		gt.Error(t, err)
	})
}

func TestBigQueryNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		var bq config.BigQuery
		parse(t, bq.Flags())
		gt.False(t, bq.Enabled())

		client := gt.R1(bq.NewClient(ctx)).NoError(t)
		gt.V(t, client).Equal(nil)
	})

	t.Run("dataset is required", func(t *testing.T) {
		var bq config.BigQuery
		parse(t, bq.Flags(), "--bigquery-project-id", "my-project")
		gt.True(t, bq.Enabled())

		_, err := bq.NewClient(ctx)
		gt.Error(t, err)
	})
}

func TestFirestoreNewRepository(t *testing.T) {
	var fsConfig config.Firestore
	parse(t, fsConfig.Flags())
	gt.False(t, fsConfig.Enabled())

	repo := gt.R1(fsConfig.NewRepository(context.Background())).NoError(t)
	gt.V(t, repo).Equal(nil)
}
