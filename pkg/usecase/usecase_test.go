package usecase_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/infra"
	"github.com/m-mizutani/tabprep/pkg/usecase"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
)

func TestNew(t *testing.T) {
	t.Run("create new usecase with default clients", func(t *testing.T) {
		uc := usecase.New(infra.New())
		gt.V(t, uc).NotEqual(nil)

		// Test that methods are accessible (compile-time check)
		_ = uc.Locate
		_ = uc.Prepare
		_ = uc.ExportCounts
	})
}

// withLogBuffer returns a context whose logger writes JSON lines into the returned buffer.
func withLogBuffer(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := gt.R1(logging.New(&buf, "json", slog.LevelDebug)).NoError(t)
	return logging.With(context.Background(), logger), &buf
}
