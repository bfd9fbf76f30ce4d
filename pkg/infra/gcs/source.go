package gcs

import (
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Source is a dataset source backed by objects directly under a Cloud Storage prefix.
type Source struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.DatasetSource = (*Source)(nil)

func New(ctx context.Context, bucket, prefix string, options ...option.ClientOption) (*Source, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is empty")
	}

	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &Source{
		client: client,
		bucket: bucket,
		prefix: NormalizePrefix(prefix),
	}, nil
}

// NormalizePrefix makes a prefix usable as a "directory": no leading slash, one trailing slash.
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

func (x *Source) Location() string {
	return "gs://" + x.bucket + "/" + x.prefix
}

// List implements interfaces.DatasetSource. Objects in sub prefixes are not listed.
func (x *Source) List(ctx context.Context, ext string) ([]string, error) {
	suffix := "." + strings.ToLower(strings.TrimPrefix(ext, "."))

	it := x.client.Bucket(x.bucket).Objects(ctx, &storage.Query{
		Prefix:    x.prefix,
		Delimiter: "/",
	})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list objects",
				goerr.V("bucket", x.bucket),
				goerr.V("prefix", x.prefix),
			)
		}

		// synthetic directory entry
		if attrs.Prefix != "" {
			continue
		}
		if MatchExt(attrs.Name, suffix) {
			paths = append(paths, "gs://"+x.bucket+"/"+attrs.Name)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// MatchExt reports whether the base name of an object has the suffix (".json" etc).
func MatchExt(name, suffix string) bool {
	base := path.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(name, "/") {
		return false
	}
	return strings.ToLower(path.Ext(base)) == suffix
}

func (x *Source) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	bucket, object, err := ParseURL(p)
	if err != nil {
		return nil, err
	}

	r, err := x.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open object",
			goerr.V("bucket", bucket),
			goerr.V("object", object),
		)
	}
	return r, nil
}

// ParseURL splits gs://bucket/object into bucket and object name.
func ParseURL(url string) (string, string, error) {
	rest, ok := strings.CutPrefix(url, "gs://")
	if !ok {
		return "", "", goerr.New("not a gs:// URL", goerr.V("url", url))
	}

	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.New("bucket or object is empty", goerr.V("url", url))
	}
	return bucket, object, nil
}

func (x *Source) Close() error {
	if err := x.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}
