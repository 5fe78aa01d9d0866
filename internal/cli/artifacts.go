package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/annotext/spanviz/pkg/errors"
	"github.com/annotext/spanviz/pkg/httputil"
	"github.com/annotext/spanviz/pkg/pipeline"
)

// artifactWriteParams bundles everything needed to write rendered
// artifacts to disk and report the result.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	entities  int
	relations int
}

// writeArtifacts writes one file per requested format and prints a
// summary. With a single format the output flag names the file directly;
// with several it is treated as a base path.
func writeArtifacts(p artifactWriteParams) error {
	if p.output != "" {
		if err := errors.ValidateOutputPath(p.output); err != nil {
			return err
		}
	}

	// Reading from stdin with no output file streams the single artifact
	// to stdout. The summary would corrupt the stream, so skip it.
	if p.input == "-" && p.output == "" && len(p.formats) == 1 {
		return writeFile(p.artifacts[p.formats[0]], "")
	}

	base := basePath(p.output, p.input)

	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := p.output
		if path == "" || len(p.formats) > 1 {
			path = base + "." + format
		}

		if err := writeFile(data, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.entities, p.relations, p.cacheHit)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; stdin and URL
// inputs have no usable local path, so they fall back to a name in the
// working directory.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		switch {
		case input == "-":
			return "document"
		case httputil.IsURL(input):
			return urlBase(input)
		default:
			return strings.TrimSuffix(input, filepath.Ext(input))
		}
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// urlBase extracts a file base name from a document URL.
func urlBase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "document"
	}
	name := path.Base(u.Path)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return "document"
	}
	return name
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeFile writes data to path, or to stdout when path is empty.
func writeFile(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}
