package pipeline

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/errors"
	"github.com/annotext/spanviz/pkg/httputil"
)

// Load reads the document for a pipeline run. An inline document wins
// over a path so API handlers can pass a request body straight through.
// A path of "-" reads JSON from stdin; http(s) URLs are fetched with
// retry on transient failures.
func Load(ctx context.Context, opts Options) (annotation.Document, error) {
	if opts.Document != nil {
		return *opts.Document, nil
	}
	if opts.Path == "-" {
		return annotation.ReadDocument(os.Stdin)
	}
	if httputil.IsURL(opts.Path) {
		return loadRemote(ctx, opts.Path)
	}
	return annotation.ReadDocumentFile(opts.Path)
}

func loadRemote(ctx context.Context, url string) (annotation.Document, error) {
	data, err := httputil.FetchDocument(ctx, url)
	if err != nil {
		if httputil.IsNotFound(err) {
			return annotation.Document{}, errors.New(errors.ErrCodeNotFound, "no document at %s", url)
		}
		return annotation.Document{}, errors.Wrap(errors.ErrCodeInternal, err, "fetch %s", url)
	}

	if isYAMLURL(url) {
		return annotation.ReadDocumentYAML(bytes.NewReader(data))
	}
	return annotation.ReadDocument(bytes.NewReader(data))
}

func isYAMLURL(url string) bool {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	return strings.HasSuffix(url, ".yaml") || strings.HasSuffix(url, ".yml")
}
