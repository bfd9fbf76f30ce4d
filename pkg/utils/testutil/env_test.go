package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/utils/testutil"
)

func TestGetEnvOrSkip(t *testing.T) {
	t.Run("Returns value when env var is set", func(t *testing.T) {
		key := "TEST_TABPREP_ENV_VAR_SET"
		t.Setenv(key, "test_value")

		gt.V(t, testutil.GetEnvOrSkip(t, key)).Equal("test_value")
	})
}

func TestWriteFiles(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"cards.json":      "[]",
		"nested/old.json": "[]",
	})

	raw := gt.R1(os.ReadFile(filepath.Join(dir, "cards.json"))).NoError(t)
	gt.V(t, string(raw)).Equal("[]")

	_, err := os.Stat(filepath.Join(dir, "nested", "old.json"))
	gt.NoError(t, err)
}
