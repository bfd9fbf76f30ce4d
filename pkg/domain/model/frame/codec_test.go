package frame_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/domain/model/frame"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

func TestReadJSON(t *testing.T) {
	t.Run("array of objects keeps first appearance order", func(t *testing.T) {
		raw := `[
  {"name": "Llanowar Elves", "cmc": 1.0, "keywords": []},
  {"name": "Serra Angel", "cmc": 5.0, "keywords": ["Flying", "Vigilance"], "loyalty": null}
]`
		f := gt.R1(frame.ReadJSON(strings.NewReader(raw))).NoError(t)
		gt.V(t, f.Columns()).Equal([]string{"name", "cmc", "keywords", "loyalty"})
		gt.V(t, f.Len()).Equal(2)

		cmc, _ := f.Value(1, "cmc")
		gt.V(t, cmc).Equal(json.Number("5.0"))
		kw, _ := f.Value(1, "keywords")
		gt.V(t, kw).Equal([]any{"Flying", "Vigilance"})
		loyalty, _ := f.Value(0, "loyalty")
		gt.V(t, loyalty).Equal(nil)
	})

	t.Run("list object with data field", func(t *testing.T) {
		raw := `{"object": "list", "has_more": false, "data": [{"name": "Island"}]}`
		f := gt.R1(frame.ReadJSON(strings.NewReader(raw))).NoError(t)
		gt.V(t, f.Len()).Equal(1)
		gt.V(t, f.Columns()).Equal([]string{"name"})
	})

	t.Run("object without data field", func(t *testing.T) {
		_, err := frame.ReadJSON(strings.NewReader(`{"object": "card"}`))
		gt.True(t, errors.Is(err, types.ErrInvalidDataset))
	})

	t.Run("non object record", func(t *testing.T) {
		_, err := frame.ReadJSON(strings.NewReader(`[1, 2]`))
		gt.True(t, errors.Is(err, types.ErrInvalidDataset))
	})

	t.Run("broken JSON", func(t *testing.T) {
		_, err := frame.ReadJSON(strings.NewReader(`[{"name": `))
		gt.True(t, errors.Is(err, types.ErrInvalidDataset))
	})

	t.Run("scalar top level", func(t *testing.T) {
		_, err := frame.ReadJSON(strings.NewReader(`"cards"`))
		gt.True(t, errors.Is(err, types.ErrInvalidDataset))
	})
}

func TestReadJSONLines(t *testing.T) {
	raw := "{\"name\": \"Forest\", \"cmc\": 0}\n{\"name\": \"Shock\", \"cmc\": 1, \"rarity\": \"common\"}\n"
	f := gt.R1(frame.ReadJSONLines(strings.NewReader(raw))).NoError(t)
	gt.V(t, f.Columns()).Equal([]string{"name", "cmc", "rarity"})
	gt.V(t, f.Len()).Equal(2)

	_, err := frame.ReadJSONLines(strings.NewReader("{\"a\": 1}\n[1]\n"))
	gt.True(t, errors.Is(err, types.ErrInvalidDataset))
}

func TestReadCSV(t *testing.T) {
	t.Run("header and records", func(t *testing.T) {
		raw := "\ufeffname, rarity,edhrec_rank\nShock,common,12\nBlack Lotus,bonus,\n"
		f := gt.R1(frame.ReadCSV(strings.NewReader(raw))).NoError(t)
		gt.V(t, f.Columns()).Equal([]string{"name", "rarity", "edhrec_rank"})
		gt.V(t, f.Len()).Equal(2)

		rank, _ := f.Value(1, "edhrec_rank")
		gt.V(t, rank).Equal(nil)
	})

	t.Run("empty input", func(t *testing.T) {
		f := gt.R1(frame.ReadCSV(strings.NewReader(""))).NoError(t)
		gt.V(t, f.Len()).Equal(0)
	})

	t.Run("ragged record", func(t *testing.T) {
		_, err := frame.ReadCSV(strings.NewReader("a,b\n1\n"))
		gt.True(t, errors.Is(err, types.ErrInvalidDataset))
	})
}

func TestWrite(t *testing.T) {
	f := gt.R1(frame.New([]string{"rarity", "count"},
		[]any{"common", int64(2)},
		[]any{nil, int64(1)},
	)).NoError(t)

	t.Run("JSON keeps column order", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, f.WriteJSON(&buf))
		gt.V(t, buf.String()).Equal(`[{"rarity":"common","count":2},{"rarity":null,"count":1}]` + "\n")
	})

	t.Run("CSV", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, f.WriteCSV(&buf))
		gt.V(t, buf.String()).Equal("rarity,count\ncommon,2\n,1\n")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, f.WriteTable(&buf))
		gt.True(t, strings.HasPrefix(buf.String(), "rarity"))
		gt.True(t, strings.Contains(buf.String(), "common"))
	})
}

func TestDigits(t *testing.T) {
	testCases := []struct {
		name  string
		input any
		want  int64
		ok    bool
	}{
		{name: "plain digits", input: "42", want: 42, ok: true},
		{name: "signed text", input: "+1", want: 1, ok: true},
		{name: "no digits", input: "*", ok: false},
		{name: "missing", input: nil, ok: false},
		{name: "whole JSON number", input: json.Number("3.0"), want: 3, ok: true},
		{name: "fractional JSON number", input: json.Number("0.5"), want: 0, ok: true},
		{name: "JSON integer", input: json.Number("12"), want: 12, ok: true},
		{name: "negative float", input: -2.7, want: 2, ok: true},
		{name: "int", input: 7, want: 7, ok: true},
		{name: "overflow", input: "99999999999999999999", ok: false},
		{name: "smallest int64", input: json.Number("-9223372036854775808"), ok: false},
		{name: "JSON number just above int64", input: json.Number("9223372036854775808"), ok: false},
		{name: "float rounding to 2^63", input: 9.223372036854775807e18, ok: false},
		{name: "largest int64", input: json.Number("9223372036854775807"), want: math.MaxInt64, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := frame.Digits(tc.input)
			gt.V(t, ok).Equal(tc.ok)
			if tc.ok {
				gt.V(t, got).Equal(tc.want)
			}
		})
	}
}
