package annotation

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const docJSON = `{
  "text": "The dump truck was inspected",
  "entities": [
    {"id": "T1", "type": "Object", "start": 4, "end": 14},
    {"id": "T2", "type": "Activity", "start": 19, "end": 28, "color": "#8fb2f2"}
  ],
  "relations": [
    {"id": "R1", "type": "hasTarget", "source": "T2", "target": "T1"}
  ]
}`

const docYAML = `text: The dump truck was inspected
entities:
  - id: T1
    type: Object
    start: 4
    end: 14
  - id: T2
    type: Activity
    start: 19
    end: 28
    color: "#8fb2f2"
relations:
  - id: R1
    type: hasTarget
    source: T2
    target: T1
`

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(docJSON))
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}

	if doc.Text != "The dump truck was inspected" {
		t.Errorf("Text = %q", doc.Text)
	}
	if len(doc.Entities) != 2 || doc.Entities[1].Color != "#8fb2f2" {
		t.Errorf("Entities = %v", doc.Entities)
	}
	if len(doc.Relations) != 1 || doc.Relations[0].Source != "T2" {
		t.Errorf("Relations = %v", doc.Relations)
	}
}

func TestReadDocumentInvalid(t *testing.T) {
	if _, err := ReadDocument(strings.NewReader("{not json")); err == nil {
		t.Error("ReadDocument() error = nil, want decode error")
	}
}

func TestReadDocumentYAMLMatchesJSON(t *testing.T) {
	fromJSON, err := ReadDocument(strings.NewReader(docJSON))
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	fromYAML, err := ReadDocumentYAML(strings.NewReader(docYAML))
	if err != nil {
		t.Fatalf("ReadDocumentYAML() error = %v", err)
	}

	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Errorf("YAML decode = %+v, want %+v", fromYAML, fromJSON)
	}
}

func TestReadDocumentFileByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(jsonPath, []byte(docJSON), 0644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(yamlPath, []byte(docYAML), 0644); err != nil {
		t.Fatal(err)
	}

	fromJSON, err := ReadDocumentFile(jsonPath)
	if err != nil {
		t.Fatalf("ReadDocumentFile(json) error = %v", err)
	}
	fromYAML, err := ReadDocumentFile(yamlPath)
	if err != nil {
		t.Fatalf("ReadDocumentFile(yaml) error = %v", err)
	}

	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Errorf("file decode mismatch: json %+v, yaml %+v", fromJSON, fromYAML)
	}
}

func TestReadDocumentFileMissing(t *testing.T) {
	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadDocumentFile() error = nil, want open error")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(docJSON))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile() error = %v", err)
	}

	back, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error = %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Errorf("round trip = %+v, want %+v", back, doc)
	}
}

func TestIsDocumentFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"doc.json", true},
		{"doc.yaml", true},
		{"doc.YML", true},
		{"doc.svg", false},
		{"doc", false},
	}

	for _, tt := range tests {
		if got := IsDocumentFile(tt.path); got != tt.want {
			t.Errorf("IsDocumentFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
