package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/cache"
	"github.com/annotext/spanviz/pkg/errors"
	"github.com/annotext/spanviz/pkg/observability"
	"github.com/annotext/spanviz/pkg/pipeline"
	"github.com/annotext/spanviz/pkg/store"
)

// documentRequest is the body for creating or updating a stored document.
type documentRequest struct {
	Name     string               `json:"name"`
	Document *annotation.Document `json:"document"`
}

func decodeDocumentRequest(r *http.Request) (documentRequest, error) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if req.Name == "" {
		return req, errors.New(errors.ErrCodeInvalidInput, "name is required")
	}
	if err := errors.ValidateStorePath(req.Name); err != nil {
		return req, errors.New(errors.ErrCodeInvalidInput, "invalid name: %v", err)
	}
	if req.Document == nil {
		return req, errors.New(errors.ErrCodeInvalidDocument, "document is required")
	}
	return req, nil
}

// documentID extracts and validates the {id} route parameter. IDs feed
// cache keys, so malformed values are rejected before any lookup.
func documentID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDocumentRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.Create(r.Context(), req.Name, *req.Document)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []store.DocumentRecord{}
	}

	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.getDocument(r, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req, err := decodeDocumentRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.Update(r.Context(), id, req.Name, *req.Document)
	if err != nil {
		if store.IsNotFound(err) {
			err = errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", id)
		}
		s.writeError(w, r, err)
		return
	}

	// Drop the cached copy so the next read sees the new content.
	_ = s.cache.Delete(r.Context(), s.keyer.DocumentKey(id))

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if store.IsNotFound(err) {
			err = errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", id)
		}
		s.writeError(w, r, err)
		return
	}

	_ = s.cache.Delete(r.Context(), s.keyer.DocumentKey(id))

	w.WriteHeader(http.StatusNoContent)
}

// handleRenderDocument renders a stored document. Render options come
// from query parameters rather than a body, so a browser can fetch the
// artifact directly.
func (s *Server) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	opts, err := renderQueryOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.getDocument(r, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Document = &rec.Document

	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "%v", err))
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

// getDocument reads a document record through the cache. Hits skip the
// store entirely; misses populate the cache for the next read.
func (s *Server) getDocument(r *http.Request, id string) (store.DocumentRecord, error) {
	ctx := r.Context()
	key := s.keyer.DocumentKey(id)

	if data, ok, _ := s.cache.Get(ctx, key); ok {
		var rec store.DocumentRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			observability.Cache().OnCacheHit(ctx, "document")
			return rec, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "document")

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return rec, errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", id)
		}
		return rec, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := s.cache.Set(ctx, key, data, cache.TTLDocument); err == nil {
			observability.Cache().OnCacheSet(ctx, "document", len(data))
		}
	}

	return rec, nil
}

// renderQueryOptions builds pipeline options from render query
// parameters. Unset parameters fall through to the pipeline defaults.
func renderQueryOptions(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options

	if v := q.Get("format"); v != "" {
		opts.Formats = []string{v}
	}
	if v := q.Get("viz"); v != "" {
		opts.Viz = v
	}
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}
	if v := q.Get("width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid width: %q", v)
		}
		opts.Width = f
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale: %q", v)
		}
		opts.Scale = f
	}
	opts.Interactive = q.Get("interactive") == "true"
	opts.Detailed = q.Get("detailed") == "true"
	opts.Refresh = q.Get("refresh") == "true"

	return opts, nil
}
