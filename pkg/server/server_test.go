package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/cache"
	"github.com/annotext/spanviz/pkg/pipeline"
	"github.com/annotext/spanviz/pkg/store"
)

func testDocument() annotation.Document {
	return annotation.Document{
		Text: "The dump truck was inspected",
		Entities: []annotation.Entity{
			{ID: "T1", Type: "Object", Start: 4, End: 14},
			{ID: "T2", Type: "Activity", Start: 19, End: 28},
		},
		Relations: []annotation.Relation{
			{ID: "R1", Type: "hasTarget", Source: "T2", Target: "T1"},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	return New(Config{
		Cache:  fc,
		Logger: log.New(io.Discard),
	})
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := newTestServer(t).Router()

	w := doRequest(t, h, http.MethodGet, "/healthz", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("GET /healthz body = %s, want it to contain %q", w.Body.String(), "ok")
	}
}

func TestLayoutEndpoint(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	body := pipeline.Options{Document: &doc, Width: 400}
	w := doRequest(t, h, http.MethodPost, "/v1/layout", body)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /v1/layout status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var resp layoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Layout == nil {
		t.Fatal("response layout is nil")
	}
	if resp.Layout.Height != 110 {
		t.Errorf("layout height = %v, want 110", resp.Layout.Height)
	}
	if len(resp.DocHash) != 64 {
		t.Errorf("doc hash length = %d, want 64", len(resp.DocHash))
	}
	if resp.Cached {
		t.Error("first request reported a cache hit")
	}

	// Same document and options again: the layout should come from cache.
	w = doRequest(t, h, http.MethodPost, "/v1/layout", body)
	if w.Code != http.StatusOK {
		t.Fatalf("second POST /v1/layout status = %d, want %d", w.Code, http.StatusOK)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	if !resp.Cached {
		t.Error("second request did not report a cache hit")
	}
}

func TestLayoutRejectsPath(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	body := pipeline.Options{Path: "/etc/passwd", Document: &doc}
	w := doRequest(t, h, http.MethodPost, "/v1/layout", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /v1/layout with path status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "path is not allowed") {
		t.Errorf("error body = %s, want path rejection message", w.Body.String())
	}
}

func TestLayoutRequiresDocument(t *testing.T) {
	h := newTestServer(t).Router()

	w := doRequest(t, h, http.MethodPost, "/v1/layout", pipeline.Options{Width: 400})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /v1/layout without document status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRenderEndpoint(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	body := pipeline.Options{Document: &doc, Formats: []string{"svg"}}
	w := doRequest(t, h, http.MethodPost, "/v1/render", body)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /v1/render status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want %q", ct, "image/svg+xml")
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("response body does not look like SVG")
	}
}

func TestRenderRejectsMultipleFormats(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	body := pipeline.Options{Document: &doc, Formats: []string{"svg", "json"}}
	w := doRequest(t, h, http.MethodPost, "/v1/render", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /v1/render with two formats status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "exactly one format") {
		t.Errorf("error body = %s, want single-format message", w.Body.String())
	}
}

func TestRenderRejectsInvalidFormat(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	body := pipeline.Options{Document: &doc, Formats: []string{"gif"}}
	w := doRequest(t, h, http.MethodPost, "/v1/render", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /v1/render with bad format status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDocumentCRUD(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	// Create.
	w := doRequest(t, h, http.MethodPost, "/v1/documents", documentRequest{Name: "inspection", Document: &doc})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d (body: %s)", w.Code, http.StatusCreated, w.Body.String())
	}
	var created store.DocumentRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created record: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created record has no ID")
	}
	if created.Name != "inspection" {
		t.Errorf("created name = %q, want %q", created.Name, "inspection")
	}

	// Get. The second read comes from cache and must match.
	for i := 0; i < 2; i++ {
		w = doRequest(t, h, http.MethodGet, "/v1/documents/"+created.ID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("get #%d status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
		var got store.DocumentRecord
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode record: %v", err)
		}
		if got.Name != "inspection" {
			t.Errorf("get #%d name = %q, want %q", i+1, got.Name, "inspection")
		}
	}

	// Update must invalidate the cached copy.
	w = doRequest(t, h, http.MethodPut, "/v1/documents/"+created.ID, documentRequest{Name: "renamed", Document: &doc})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	w = doRequest(t, h, http.MethodGet, "/v1/documents/"+created.ID, nil)
	var got store.DocumentRecord
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode record after update: %v", err)
	}
	if got.Name != "renamed" {
		t.Errorf("name after update = %q, want %q (stale cache?)", got.Name, "renamed")
	}

	// List.
	w = doRequest(t, h, http.MethodGet, "/v1/documents", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", w.Code, http.StatusOK)
	}
	var recs []store.DocumentRecord
	if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("list returned %d records, want 1", len(recs))
	}

	// Delete.
	w = doRequest(t, h, http.MethodDelete, "/v1/documents/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doRequest(t, h, http.MethodGet, "/v1/documents/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	h := newTestServer(t).Router()

	w := doRequest(t, h, http.MethodGet, "/v1/documents/missing", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Errorf("error body = %s, want not-found message", w.Body.String())
	}
}

func TestRenderDocumentEndpoint(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	w := doRequest(t, h, http.MethodPost, "/v1/documents", documentRequest{Name: "inspection", Document: &doc})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", w.Code, http.StatusCreated)
	}
	var created store.DocumentRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created record: %v", err)
	}

	w = doRequest(t, h, http.MethodGet, "/v1/documents/"+created.ID+"/render?viz=nodelink&format=dot", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/vnd.graphviz")
	}
	if !strings.Contains(w.Body.String(), `"T2" -> "T1"`) {
		t.Errorf("DOT output missing relation edge: %s", w.Body.String())
	}
}

func TestRenderDocumentRejectsBadWidth(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	w := doRequest(t, h, http.MethodPost, "/v1/documents", documentRequest{Name: "inspection", Document: &doc})
	var created store.DocumentRecord
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created record: %v", err)
	}

	w = doRequest(t, h, http.MethodGet, "/v1/documents/"+created.ID+"/render?width=wide", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "invalid width") {
		t.Errorf("error body = %s, want invalid width message", w.Body.String())
	}
}

func TestCreateDocumentRejectsBadName(t *testing.T) {
	h := newTestServer(t).Router()
	doc := testDocument()

	w := doRequest(t, h, http.MethodPost, "/v1/documents", documentRequest{Name: "../../etc/passwd", Document: &doc})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "invalid name") {
		t.Errorf("error body = %s, want invalid name message", w.Body.String())
	}
}

func TestGetDocumentRejectsBadID(t *testing.T) {
	h := newTestServer(t).Router()

	w := doRequest(t, h, http.MethodGet, "/v1/documents/a..b", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusBadRequest, w.Body.String())
	}
}
