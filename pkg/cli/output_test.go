package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/cli"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/m-mizutani/tabprep/pkg/domain/model/frame"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

func TestWriteResult(t *testing.T) {
	rarity := gt.R1(frame.New([]string{"rarity", frame.CountColumn},
		[]any{nil, int64(1)},
		[]any{"common", int64(2)},
	)).NoError(t)
	set := gt.R1(frame.New([]string{"set", frame.CountColumn},
		[]any{"lea", int64(3)},
	)).NoError(t)
	result := &model.Result{
		RunID:  "run-1",
		Counts: map[string]*frame.Frame{"rarity": rarity, "set": set},
	}
	groupBy := []string{"rarity", "set"}

	t.Run("counts as csv", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, cli.WriteResultForTest(&buf, result, groupBy, "csv", "counts"))
		gt.V(t, buf.String()).Equal("column,value,count\nrarity,,1\nrarity,common,2\nset,lea,3\n")
	})

	t.Run("counts as text are separated by blank line", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, cli.WriteResultForTest(&buf, result, groupBy, "text", "counts"))
		gt.S(t, buf.String()).Contains("\n\nset")
	})

	t.Run("counts as text start with a table when the first column has no counts", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, cli.WriteResultForTest(&buf, result, []string{"cmc", "set"}, "text", "counts"))
		gt.True(t, strings.HasPrefix(buf.String(), "set"))
	})

	t.Run("unknown emit target", func(t *testing.T) {
		var buf bytes.Buffer
		err := cli.WriteResultForTest(&buf, result, groupBy, "csv", "everything")
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}
