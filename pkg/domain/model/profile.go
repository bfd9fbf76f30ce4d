package model

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/utils/safe"
	"gopkg.in/yaml.v3"
)

// SignificantColumns is the default projection of a card dataset.
var SignificantColumns = []string{
	"id",
	"name",
	"released_at",
	"mana_cost",
	"cmc",
	"color_identity",
	"keywords",
	"legalities",
	"set",
	"set_name",
	"rarity",
	"type_line",
	"oracle_text",
	"flavor_text",
	"edhrec_rank",
	"produced_mana",
	"loyalty",
	"printed_name",
	"flavor_name",
	"life_modifier",
	"hand_modifier",
}

var (
	ListColumns    = []string{"color_identity", "keywords", "produced_mana"}
	NumericColumns = []string{"cmc", "edhrec_rank"}
	GroupBy        = []string{"rarity"}
)

const (
	DefaultExtension = "json"
	DefaultSeparator = ", "
)

// Profile describes how a dataset is prepared.
type Profile struct {
	Extension      string   `yaml:"extension"`
	Columns        []string `yaml:"columns"`
	ListColumns    []string `yaml:"list_columns"`
	NumericColumns []string `yaml:"numeric_columns"`
	Separator      string   `yaml:"separator"`
	GroupBy        []string `yaml:"group_by"`
}

// DefaultProfile returns the profile for the card dataset.
func DefaultProfile() Profile {
	return Profile{
		Extension:      DefaultExtension,
		Columns:        append([]string(nil), SignificantColumns...),
		ListColumns:    append([]string(nil), ListColumns...),
		NumericColumns: append([]string(nil), NumericColumns...),
		Separator:      DefaultSeparator,
		GroupBy:        append([]string(nil), GroupBy...),
	}
}

// Ext returns the extension without a leading dot, lower-cased.
func (x Profile) Ext() string {
	return strings.ToLower(strings.TrimPrefix(x.Extension, "."))
}

// Validate checks that every derived column is part of the projection.
func (x Profile) Validate() error {
	if x.Ext() == "" {
		return goerr.Wrap(types.ErrInvalidOption, "extension is empty")
	}
	if len(x.Columns) == 0 {
		return goerr.Wrap(types.ErrInvalidOption, "no columns to project")
	}

	projected := make(map[string]struct{}, len(x.Columns))
	for _, c := range x.Columns {
		if c == "" {
			return goerr.Wrap(types.ErrInvalidOption, "empty column name")
		}
		if _, dup := projected[c]; dup {
			return goerr.Wrap(types.ErrInvalidOption, "column is listed twice", goerr.V("column", c))
		}
		projected[c] = struct{}{}
	}

	for kind, cols := range map[string][]string{
		"list_columns":    x.ListColumns,
		"numeric_columns": x.NumericColumns,
		"group_by":        x.GroupBy,
	} {
		for _, c := range cols {
			if _, ok := projected[c]; !ok {
				return goerr.Wrap(types.ErrInvalidOption, "column is not projected",
					goerr.V("kind", kind),
					goerr.V("column", c),
				)
			}
		}
	}

	return nil
}

// LoadProfile reads a YAML profile. Fields left out of the file keep their default value.
func LoadProfile(r io.Reader) (*Profile, error) {
	profile := DefaultProfile()
	if err := yaml.NewDecoder(r).Decode(&profile); err != nil && err != io.EOF {
		return nil, goerr.Wrap(errors.Join(types.ErrInvalidOption, err), "failed to decode profile")
	}

	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid profile")
	}
	return &profile, nil
}

// LoadProfileFromFile reads a YAML profile from path.
func LoadProfileFromFile(path string) (*Profile, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open profile", goerr.V("path", path))
	}
	defer safe.Close(fd)

	return LoadProfile(fd)
}
