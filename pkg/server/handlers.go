package server

import (
	"encoding/json"
	"net/http"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/cache"
	"github.com/annotext/spanviz/pkg/errors"
	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/pipeline"
)

// layoutResponse is the body returned by POST /v1/layout.
type layoutResponse struct {
	DocHash  string               `json:"doc_hash"`
	Layout   *layout.Result       `json:"layout"`
	Problems []annotation.Problem `json:"problems,omitempty"`
	Cached   bool                 `json:"cached"`
}

// decodeOptions parses the request body into pipeline options and
// enforces the inline-document contract.
func decodeOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if opts.Path != "" {
		return opts, errors.New(errors.ErrCodeInvalidPath, "path is not allowed; send the document inline")
	}
	if opts.Document == nil {
		return opts, errors.New(errors.ErrCodeInvalidDocument, "document is required")
	}
	return opts, nil
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.IsNodelink() {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "layout is only available for the span view"))
		return
	}
	if err := opts.ValidateForLayout(); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "%v", err))
		return
	}

	doc := *opts.Document
	res, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		DocHash:  docHash(doc),
		Layout:   res,
		Problems: doc.Validate(),
		Cached:   hit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "%v", err))
		return
	}
	if len(opts.Formats) != 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "render accepts exactly one format, got %d", len(opts.Formats)))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	writeArtifact(w, format, result.Artifacts[format])
}

func docHash(doc annotation.Document) string {
	data, err := annotation.MarshalDocument(doc)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
