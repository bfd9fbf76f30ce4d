package errutil

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
)

// HandleError reports err to Sentry, tagged with the run ID of ctx, and logs it.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	runID, ctx := logging.CtxRunID(ctx)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("run_id", runID.String())
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	attrs := []any{"error", err, "run_id", runID}
	if evID != nil {
		attrs = append(attrs, "sentry.EventID", *evID)
	}
	logging.From(ctx).Error(msg, attrs...)
}
