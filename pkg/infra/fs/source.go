package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
)

// Source is a dataset source backed by a local directory.
type Source struct {
	dir string
}

var _ interfaces.DatasetSource = (*Source)(nil)

func New(dir string) *Source {
	if dir == "" {
		dir = "."
	}
	return &Source{dir: filepath.Clean(dir)}
}

func (x *Source) Location() string { return x.dir }

// List implements interfaces.DatasetSource. Only regular entries directly under the directory are listed.
func (x *Source) List(ctx context.Context, ext string) ([]string, error) {
	entries, err := os.ReadDir(x.dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read dataset directory", goerr.V("dir", x.dir))
	}

	suffix := "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	var paths []string
	for _, entry := range entries {
		// hidden files are not matched, as with shell globbing
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != suffix {
			continue
		}
		paths = append(paths, filepath.Join(x.dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

func (x *Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open dataset file", goerr.V("path", path))
	}
	return fd, nil
}
