package errutil_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/utils/errutil"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
)

func TestHandleError(t *testing.T) {
	t.Run("handle goerr with values", func(t *testing.T) {
		_, ctx := logging.CtxRunID(context.Background())
		err := goerr.Wrap(types.ErrFileMissing, "not found", goerr.V("dir", "/tmp/datasets"))

		// Should not panic without sentry configured
		errutil.HandleError(ctx, "test message", err)
	})

	t.Run("handle nil error", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", nil)
	})
}
