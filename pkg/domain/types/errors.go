package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrFileMissing means no file with the requested extension exists in the dataset directory.
	ErrFileMissing = goerr.New("no dataset file found")
	// ErrAmbiguousFile means more than one file with the requested extension exists.
	ErrAmbiguousFile = goerr.New("more than one dataset file found")

	ErrDatasetUnavailable = goerr.New("dataset is not available")
	ErrInvalidDataset     = goerr.New("invalid dataset")
	ErrColumnNotFound     = goerr.New("column not found")
	ErrInvalidOption      = goerr.New("invalid option")
)
