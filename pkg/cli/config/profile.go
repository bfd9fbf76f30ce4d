package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Profile builds a model.Profile from an optional YAML file and flags. Flags override the file.
type Profile struct {
	file           string
	extension      string
	columns        []string
	listColumns    []string
	numericColumns []string
	groupBy        []string
	separator      string
}

func (x *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Aliases:     []string{"p"},
			Usage:       "YAML file describing columns, list/numeric columns and group-by columns",
			Category:    "Profile",
			Sources:     cli.EnvVars("TABPREP_PROFILE"),
			Destination: &x.file,
		},
		&cli.StringFlag{
			Name:        "ext",
			Aliases:     []string{"e"},
			Usage:       "Extension of the dataset file [json|jsonl|ndjson|csv]",
			Category:    "Profile",
			Sources:     cli.EnvVars("TABPREP_EXT"),
			Destination: &x.extension,
		},
		&cli.StringSliceFlag{
			Name:        "column",
			Aliases:     []string{"c"},
			Usage:       "Column to keep, in order (repeatable)",
			Category:    "Profile",
			Sources:     cli.EnvVars("TABPREP_COLUMNS"),
			Destination: &x.columns,
		},
		&cli.StringSliceFlag{
			Name:        "list-column",
			Usage:       "List-valued column to join into text (repeatable)",
			Category:    "Profile",
			Sources:     cli.EnvVars("TABPREP_LIST_COLUMNS"),
			Destination: &x.listColumns,
		},
		&cli.StringSliceFlag{
			Name:        "numeric-column",
			Usage:       "Column to coerce to a non-negative integer (repeatable)",
			Category:    "Profile",
			Sources:     cli.EnvVars("TABPREP_NUMERIC_COLUMNS"),
			Destination: &x.numericColumns,
		},
		&cli.StringSliceFlag{
			Name:        "group-by",
			Aliases:     []string{"g"},
			Usage:       "Column to count values of (repeatable)",
			Category:    "Profile",
			Sources:     cli.EnvVars("TABPREP_GROUP_BY"),
			Destination: &x.groupBy,
		},
		&cli.StringFlag{
			Name:        "separator",
			Usage:       "Separator for joining list cells",
			Category:    "Profile",
			Sources:     cli.EnvVars("TABPREP_SEPARATOR"),
			Destination: &x.separator,
		},
	}
}

func (x *Profile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", x.file),
		slog.String("ext", x.extension),
		slog.Any("columns", x.columns),
		slog.Any("listColumns", x.listColumns),
		slog.Any("numericColumns", x.numericColumns),
		slog.Any("groupBy", x.groupBy),
		slog.String("separator", x.separator),
	)
}

// Build returns the validated profile.
func (x *Profile) Build() (*model.Profile, error) {
	profile := model.DefaultProfile()
	if x.file != "" {
		loaded, err := model.LoadProfileFromFile(x.file)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load profile file", goerr.V("path", x.file))
		}
		profile = *loaded
	}

	if x.extension != "" {
		profile.Extension = x.extension
	}
	if len(x.columns) > 0 {
		profile.Columns = x.columns
	}
	if len(x.listColumns) > 0 {
		profile.ListColumns = x.listColumns
	}
	if len(x.numericColumns) > 0 {
		profile.NumericColumns = x.numericColumns
	}
	if len(x.groupBy) > 0 {
		profile.GroupBy = x.groupBy
	}
	if x.separator != "" {
		profile.Separator = x.separator
	}

	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid profile")
	}
	return &profile, nil
}
