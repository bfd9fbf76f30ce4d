package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/repository"
)

// TestAll runs all test cases for CountRepository
// This is the main entry point for testing any CountRepository implementation
func TestAll(t *testing.T, repo interfaces.CountRepository) {
	t.Run("PutAndList", func(t *testing.T) {
		TestPutAndList(t, repo)
	})
	t.Run("Overwrite", func(t *testing.T) {
		TestOverwrite(t, repo)
	})
	t.Run("ValueWithSlash", func(t *testing.T) {
		TestValueWithSlash(t, repo)
	})
	t.Run("NotFound", func(t *testing.T) {
		TestNotFound(t, repo)
	})
	t.Run("LargeBatch", func(t *testing.T) {
		TestLargeBatch(t, repo)
	})
}

func newRunID() types.RunID {
	return types.RunID(fmt.Sprintf("test-%s", uuid.New().String()))
}

// TestPutAndList tests that records are stored per column and listed missing first
func TestPutAndList(t *testing.T, repo interfaces.CountRepository) {
	ctx := context.Background()
	runID := newRunID()
	now := time.Now().UTC().Truncate(time.Millisecond)

	records := []*model.CountRecord{
		{Dataset: "cards.json", Column: "rarity", Value: "rare", Count: 2, Timestamp: now},
		{Dataset: "cards.json", Column: "rarity", Value: "common", Count: 5, Timestamp: now},
		{Dataset: "cards.json", Column: "rarity", Missing: true, Count: 1, Timestamp: now},
		{Dataset: "cards.json", Column: "set", Value: "lea", Count: 8, Timestamp: now},
	}
	gt.NoError(t, repo.PutCounts(ctx, runID, records))

	got, err := repo.ListCounts(ctx, runID, "rarity")
	gt.NoError(t, err)
	gt.A(t, got).Length(3)
	gt.V(t, got[0].Missing).Equal(true)
	gt.V(t, got[1].Value).Equal("common")
	gt.V(t, got[1].Count).Equal(int64(5))
	gt.V(t, got[1].RunID).Equal(runID)
	gt.V(t, got[1].Dataset).Equal("cards.json")
	gt.True(t, got[1].Timestamp.Equal(now))
	gt.V(t, got[2].Value).Equal("rare")

	var total int64
	for _, r := range got {
		total += r.Count
	}
	gt.V(t, total).Equal(int64(8))

	sets, err := repo.ListCounts(ctx, runID, "set")
	gt.NoError(t, err)
	gt.A(t, sets).Length(1)

	none, err := repo.ListCounts(ctx, runID, "keywords")
	gt.NoError(t, err)
	gt.A(t, none).Length(0)

	// Stored records are not affected by later changes of the input
	records[1].Count = 100
	got, err = repo.ListCounts(ctx, runID, "rarity")
	gt.NoError(t, err)
	gt.V(t, got[1].Count).Equal(int64(5))
}

// TestOverwrite tests that putting the same column and value again replaces the record
func TestOverwrite(t *testing.T, repo interfaces.CountRepository) {
	ctx := context.Background()
	runID := newRunID()

	gt.NoError(t, repo.PutCounts(ctx, runID, []*model.CountRecord{
		{Column: "rarity", Value: "common", Count: 1},
	}))
	gt.NoError(t, repo.PutCounts(ctx, runID, []*model.CountRecord{
		{Column: "rarity", Value: "common", Count: 7},
	}))

	got, err := repo.ListCounts(ctx, runID, "rarity")
	gt.NoError(t, err)
	gt.A(t, got).Length(1)
	gt.V(t, got[0].Count).Equal(int64(7))
}

// TestValueWithSlash tests values that are not usable as plain document IDs
func TestValueWithSlash(t *testing.T, repo interfaces.CountRepository) {
	ctx := context.Background()
	runID := newRunID()

	gt.NoError(t, repo.PutCounts(ctx, runID, []*model.CountRecord{
		{Column: "type_line", Value: "Artifact Creature / Golem", Count: 2},
		{Column: "type_line", Value: "", Count: 1},
		{Column: "type_line", Missing: true, Count: 3},
	}))

	got, err := repo.ListCounts(ctx, runID, "type_line")
	gt.NoError(t, err)
	gt.A(t, got).Length(3)
	gt.V(t, got[0].Missing).Equal(true)
	gt.V(t, got[1].Value).Equal("")
	gt.V(t, got[1].Missing).Equal(false)
	gt.V(t, got[2].Value).Equal("Artifact Creature / Golem")
}

// TestNotFound tests listing an unknown run and putting without run ID
func TestNotFound(t *testing.T, repo interfaces.CountRepository) {
	ctx := context.Background()

	_, err := repo.ListCounts(ctx, newRunID(), "rarity")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	err = repo.PutCounts(ctx, "", []*model.CountRecord{{Column: "rarity", Value: "common", Count: 1}})
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}

// TestLargeBatch tests more records than one Firestore batch can hold
func TestLargeBatch(t *testing.T, repo interfaces.CountRepository) {
	ctx := context.Background()
	runID := newRunID()

	const n = 1200
	records := make([]*model.CountRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, &model.CountRecord{
			Column: "edhrec_rank",
			Value:  fmt.Sprintf("%05d", i),
			Count:  1,
		})
	}
	gt.NoError(t, repo.PutCounts(ctx, runID, records))

	got, err := repo.ListCounts(ctx, runID, "edhrec_rank")
	gt.NoError(t, err)
	gt.A(t, got).Length(n)
	gt.V(t, got[0].Value).Equal("00000")
	gt.V(t, got[n-1].Value).Equal(fmt.Sprintf("%05d", n-1))
}
