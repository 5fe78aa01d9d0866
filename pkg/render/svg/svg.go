package svg

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/layout"
)

const (
	// Baseline and glyph size as fractions of the line height.
	baselineRatio = 0.75
	textSizeRatio = 0.72
	// Label baseline as a fraction of the box height.
	labelBaselineRatio = 0.72
)

const entityInteractionCSS = `
    .entity { transition: stroke-width 0.2s ease; }
    .entity.highlight { stroke-width: 3; }
    .entity-label { transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; }
    .entity-label.highlight { transform: scale(1.08); font-weight: bold; }
    .relation { transition: stroke-width 0.2s ease; }
    .relation.highlight { stroke-width: 2.5; }`

const entityInteractionJS = `
    function highlight(ids) {
      document.querySelectorAll('.entity').forEach(b => b.classList.toggle('highlight', ids.includes(b.id.replace('entity-', ''))));
      document.querySelectorAll('.entity-label').forEach(t => t.classList.toggle('highlight', ids.includes(t.dataset.entity)));
      document.querySelectorAll('.relation').forEach(p => p.classList.toggle('highlight', ids.includes(p.dataset.source) || ids.includes(p.dataset.target)));
    }
    function clearHighlight() {
      document.querySelectorAll('.entity, .entity-label, .relation').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.entity').forEach(el => {
      el.addEventListener('mouseenter', () => highlight([el.id.replace('entity-', '')]));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// Option configures span rendering via [Render].
type Option func(*renderer)

type renderer struct {
	doc         *annotation.Document
	theme       Theme
	interactive bool
}

// WithDocument attaches the source document so type names drive the box
// palette even when display labels differ. Without it, colors hash the
// display label instead.
func WithDocument(d *annotation.Document) Option { return func(r *renderer) { r.doc = d } }

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option { return func(r *renderer) { r.theme = t } }

// WithInteraction embeds hover highlighting for entities and their
// relations. The output stops being a plain static image, so this is
// opt-in.
func WithInteraction() Option { return func(r *renderer) { r.interactive = true } }

// Render draws a computed layout as a standalone SVG document. All
// geometry comes from the result itself, so a result loaded from disk
// renders identically to a freshly built one.
func Render(res *layout.Result, opts ...Option) []byte {
	r := newRenderer(opts...)
	c := res.Constants

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		res.Width, res.Height, res.Width, res.Height)

	r.renderDefs(&buf)
	if r.theme.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Background)
	}

	r.renderText(&buf, res, c)
	r.renderBoxes(&buf, res, c)
	r.renderPaths(&buf, res, c)

	if r.interactive {
		renderInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newRenderer(opts ...Option) renderer {
	r := renderer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *renderer) renderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <marker id="arrow" viewBox="0 0 8 8" refX="7" refY="4" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
      <path d="M 0 0 L 8 4 L 0 8 z" fill="%s"/>
    </marker>
    <marker id="cont" viewBox="0 0 6 6" refX="3" refY="3" markerWidth="5" markerHeight="5">
      <circle cx="3" cy="3" r="2.2" fill="none" stroke="%s" stroke-width="1"/>
    </marker>
  </defs>
`, r.theme.RelationColor, r.theme.RelationColor)
}

// renderText draws every placed chunk. textLength pins each run to its
// computed width so browser font substitution cannot drift the glyphs
// away from the boxes underneath them.
func (r *renderer) renderText(buf *bytes.Buffer, res *layout.Result, c layout.Constants) {
	fontSize := c.LineHeight * textSizeRatio
	for _, ln := range res.Lines {
		y := c.Margin + ln.Y + c.LineHeight*baselineRatio
		for _, pc := range ln.Chunks {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" textLength="%.1f" lengthAdjust="spacingAndGlyphs">%s</text>`+"\n",
				c.Margin+pc.X, y, r.theme.FontFamily, fontSize, r.theme.TextColor, pc.Width, EscapeXML(pc.Text))
		}
	}
}

func (r *renderer) renderBoxes(buf *bytes.Buffer, res *layout.Result, c layout.Constants) {
	for _, id := range slices.Sorted(maps.Keys(res.Positions)) {
		pos := res.Positions[id]
		lbl := res.Labels[id]

		fill := lbl.Color
		if fill == "" {
			fill = r.theme.TypeColor(r.typeLabel(id, lbl))
		}

		fmt.Fprintf(buf, `  <rect class="entity" id="entity-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s" fill-opacity="0.85" stroke="%s" stroke-width="1"`,
			EscapeXML(id), pos.X, pos.BoxTop(c), pos.Width, c.EntityBoxHeight, fill, r.theme.BoxStroke)
		if lbl.Truncated {
			fmt.Fprintf(buf, `><title>%s</title></rect>`+"\n", EscapeXML(lbl.Full))
		} else {
			buf.WriteString("/>\n")
		}

		if lbl.Text != "" {
			fmt.Fprintf(buf, `  <text class="entity-label" data-entity="%s" x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
				EscapeXML(id), pos.CenterX(), pos.BoxTop(c)+c.EntityBoxHeight*labelBaselineRatio,
				r.theme.FontFamily, c.LabelFontSize, r.theme.LabelColor, EscapeXML(lbl.Text))
		}
	}
}

func (r *renderer) renderPaths(buf *bytes.Buffer, res *layout.Result, c layout.Constants) {
	for _, p := range res.Paths {
		color := p.Color
		if color == "" {
			color = r.theme.RelationColor
		}

		for si, seg := range p.Segments {
			last := si == len(p.Segments)-1
			var markers string
			if si > 0 {
				markers += ` marker-start="url(#cont)"`
			}
			if last {
				markers += ` marker-end="url(#arrow)"`
			} else {
				markers += ` marker-end="url(#cont)"`
			}
			fmt.Fprintf(buf, `  <polyline class="relation" data-source="%s" data-target="%s" points="%s" fill="none" stroke="%s" stroke-width="1.5"%s/>`+"\n",
				EscapeXML(p.Source), EscapeXML(p.Target), formatPoints(seg.Points), color, markers)
		}

		if p.Label != "" {
			var transform string
			if p.LabelRotation != 0 {
				transform = fmt.Sprintf(` transform="rotate(%.0f %.1f %.1f)"`, p.LabelRotation, p.LabelX, p.LabelY)
			}
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="%s"%s>%s</text>`+"\n",
				p.LabelX, p.LabelY, r.theme.FontFamily, c.LabelFontSize, color, transform, EscapeXML(p.Label))
		}
	}
}

func formatPoints(pts []layout.Point) string {
	parts := make([]string, len(pts))
	for i, pt := range pts {
		parts[i] = fmt.Sprintf("%.1f,%.1f", pt.X, pt.Y)
	}
	return strings.Join(parts, " ")
}

func renderInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", entityInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", entityInteractionJS)
}

func (r *renderer) typeLabel(id string, lbl layout.Label) string {
	if r.doc != nil {
		if ent, ok := r.doc.Entity(id); ok {
			return ent.Type
		}
	}
	return lbl.Full
}
