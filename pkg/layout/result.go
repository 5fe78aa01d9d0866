package layout

import (
	"encoding/json"
	"os"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/errors"
)

// Result is the complete computed layout for one document. It carries
// everything a renderer needs: packed lines with placed chunks, box
// positions, routed relation paths, display labels, and the canvas size.
// The constants used for the computation are embedded so geometry derived
// from them (box heights, line heights) can be reproduced when a result
// is loaded from disk.
//
// Skipped lists the document problems encountered along the way; a
// non-empty Skipped never prevents the rest of the layout from being
// produced.
type Result struct {
	Width     float64                   `json:"width" bson:"width"`
	Height    float64                   `json:"height" bson:"height"`
	Constants Constants                 `json:"constants" bson:"constants"`
	Lines     []Line                    `json:"lines" bson:"lines"`
	Positions map[string]EntityPosition `json:"positions,omitempty" bson:"positions,omitempty"`
	Paths     []RelationPath            `json:"paths,omitempty" bson:"paths,omitempty"`
	Labels    map[string]Label          `json:"labels,omitempty" bson:"labels,omitempty"`
	Skipped   []annotation.Problem      `json:"skipped,omitempty" bson:"skipped,omitempty"`
}

// EntityCount returns the number of placed entity boxes.
func (r *Result) EntityCount() int {
	return len(r.Positions)
}

// RelationCount returns the number of routed relations.
func (r *Result) RelationCount() int {
	return len(r.Paths)
}

// Position returns the placed box for an entity ID.
func (r *Result) Position(id string) (EntityPosition, bool) {
	p, ok := r.Positions[id]
	return p, ok
}

// Marshal serializes the result as indented JSON.
func (r *Result) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to marshal layout")
	}
	return data, nil
}

// UnmarshalResult parses a serialized layout result.
func UnmarshalResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse layout")
	}
	return &r, nil
}

// ReadResultFile loads a layout result from a JSON file.
func ReadResultFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "layout file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to read layout file: %s", path)
	}
	return UnmarshalResult(data)
}

// WriteResultFile writes a layout result to a JSON file.
func WriteResultFile(path string, r *Result) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to write layout file: %s", path)
	}
	return nil
}
