package layout

import (
	"testing"

	"github.com/annotext/spanviz/pkg/annotation"
)

func fixtureChunks() []Chunk {
	return Segment("The dump truck was inspected", []annotation.Entity{
		{ID: "T1", Type: "Object", Start: 4, End: 14},
		{ID: "T2", Type: "Activity", Start: 19, End: 28},
	})
}

func TestPackLinesSingleLine(t *testing.T) {
	c := DefaultConstants()
	lines := PackLines(fixtureChunks(), 360, c)

	if len(lines) != 1 {
		t.Fatalf("PackLines() produced %d lines, want 1", len(lines))
	}
	ln := lines[0]
	if len(ln.Chunks) != 4 {
		t.Fatalf("line has %d chunks, want 4", len(ln.Chunks))
	}

	wantX := []float64{0, 32, 120, 152}
	wantW := []float64{24, 80, 24, 72}
	for i, pc := range ln.Chunks {
		if pc.X != wantX[i] || pc.Width != wantW[i] {
			t.Errorf("chunk %d placed at (%v, %v), want (%v, %v)", i, pc.X, pc.Width, wantX[i], wantW[i])
		}
	}
	if w := ln.Width(); w != 224 {
		t.Errorf("Width() = %v, want 224", w)
	}
}

func TestPackLinesWraps(t *testing.T) {
	c := DefaultConstants()
	lines := PackLines(fixtureChunks(), 120, c)

	if len(lines) != 2 {
		t.Fatalf("PackLines() produced %d lines, want 2", len(lines))
	}
	if got := len(lines[0].Chunks); got != 2 {
		t.Errorf("line 0 has %d chunks, want 2", got)
	}
	if got := lines[1].Chunks[0].Text; got != "was" {
		t.Errorf("line 1 starts with %q, want \"was\"", got)
	}
	for i, ln := range lines {
		if ln.Index != i {
			t.Errorf("line %d has Index %d", i, ln.Index)
		}
		if ln.Chunks[0].X != 0 {
			t.Errorf("line %d first chunk at X=%v, want 0", i, ln.Chunks[0].X)
		}
	}
}

func TestPackLinesOversizedChunk(t *testing.T) {
	c := DefaultConstants()
	lines := PackLines(fixtureChunks(), 20, c)

	// Every chunk is wider than the usable width, so each line carries
	// exactly one chunk instead of the packer failing.
	if len(lines) != 4 {
		t.Fatalf("PackLines() produced %d lines, want 4", len(lines))
	}
	for i, ln := range lines {
		if len(ln.Chunks) != 1 {
			t.Errorf("line %d has %d chunks, want 1", i, len(ln.Chunks))
		}
	}
}

func TestPackLinesGap(t *testing.T) {
	c := DefaultConstants()
	chunks := []Chunk{
		{Kind: ChunkWord, Text: "ab", Start: 0, End: 2},
		{Kind: ChunkWord, Text: "cd", Start: 3, End: 5},
	}
	lines := PackLines(chunks, 100, c)
	if len(lines) != 1 {
		t.Fatalf("PackLines() produced %d lines, want 1", len(lines))
	}
	if got := lines[0].Chunks[1].X; got != 24 {
		t.Errorf("second chunk at X=%v, want 24", got)
	}
}

func TestPackLinesEmpty(t *testing.T) {
	lines := PackLines(nil, 100, DefaultConstants())
	if len(lines) != 0 {
		t.Errorf("PackLines(nil) produced %d lines, want 0", len(lines))
	}
}
