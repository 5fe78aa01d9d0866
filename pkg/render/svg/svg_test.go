package svg

import (
	"strings"
	"testing"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/layout"
)

func testResult(t *testing.T) (*layout.Result, annotation.Document) {
	t.Helper()
	doc := annotation.Document{
		Text: "The dump truck was inspected",
		Entities: []annotation.Entity{
			{ID: "T1", Type: "Object", Start: 4, End: 14},
			{ID: "T2", Type: "Activity", Start: 19, End: 28},
		},
		Relations: []annotation.Relation{
			{ID: "R1", Type: "hasTarget", Source: "T2", Target: "T1"},
		},
	}
	res, err := layout.Build(doc, 400)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return res, doc
}

func TestRenderFrame(t *testing.T) {
	res, _ := testResult(t)
	out := string(Render(res))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400.0 110.0" width="400" height="110">`) {
		t.Errorf("unexpected SVG header: %s", out[:min(120, len(out))])
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output does not close the svg element")
	}
}

func TestRenderElements(t *testing.T) {
	res, _ := testResult(t)
	out := string(Render(res))

	if got := strings.Count(out, `<rect class="entity"`); got != 2 {
		t.Errorf("rendered %d entity boxes, want 2", got)
	}
	if got := strings.Count(out, `<polyline class="relation"`); got != 1 {
		t.Errorf("rendered %d relation polylines, want 1", got)
	}
	for _, want := range []string{
		`id="entity-T1"`,
		`data-source="T2"`,
		`marker-end="url(#arrow)"`,
		`textLength="80.0"`,
		">hasTarget</text>",
		">Object</text>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderInteractionOptIn(t *testing.T) {
	res, _ := testResult(t)

	if out := string(Render(res)); strings.Contains(out, "<script") {
		t.Error("static render embeds a script")
	}
	out := string(Render(res, WithInteraction()))
	if !strings.Contains(out, "<script") || !strings.Contains(out, "clearHighlight") {
		t.Error("interactive render missing highlight script")
	}
}

func TestRenderEscapesText(t *testing.T) {
	doc := annotation.Document{
		Text: "x <b> & y",
		Entities: []annotation.Entity{
			{ID: "E1", Type: "A&B", Start: 2, End: 5},
		},
	}
	res, err := layout.Build(doc, 400)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	out := string(Render(res))

	if strings.Contains(out, "<b>") {
		t.Error("raw markup leaked into output")
	}
	if !strings.Contains(out, "&lt;b&gt;") {
		t.Error("chunk text not escaped")
	}
	if !strings.Contains(out, "A&amp;B") {
		t.Error("label text not escaped")
	}
}

func TestRenderExplicitColorWins(t *testing.T) {
	doc := annotation.Document{
		Text: "pump",
		Entities: []annotation.Entity{
			{ID: "E1", Type: "Object", Start: 0, End: 4, Color: "#123456"},
		},
	}
	res, err := layout.Build(doc, 400)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if out := string(Render(res)); !strings.Contains(out, `fill="#123456"`) {
		t.Error("explicit entity color not used for box fill")
	}
}

func TestRenderDeterministic(t *testing.T) {
	res, doc := testResult(t)
	first := Render(res, WithDocument(&doc))
	for range 5 {
		if string(Render(res, WithDocument(&doc))) != string(first) {
			t.Fatal("repeated renders disagree")
		}
	}
}
