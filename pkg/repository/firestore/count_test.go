package firestore_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/repository/firestore"
	"github.com/m-mizutani/tabprep/pkg/repository/testhelper"
	"github.com/m-mizutani/tabprep/pkg/utils/testutil"
)

func TestFirestoreCountRepository(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_FIRESTORE_PROJECT_ID")
	databaseID := testutil.GetEnvOrSkip(t, "TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err)

	testhelper.TestAll(t, repo)
}
