package layout

// PackLines flows chunks into lines greedily. maxWidth is the usable
// content width; margins must already be subtracted by the caller.
//
// Chunks keep their input order. A chunk of width w starting at pen
// position x moves to the next line when x+w would exceed maxWidth,
// except that the first chunk on a line is always accepted. That rule
// makes narrow widths degrade to one oversized chunk per line instead
// of failing or looping. Placed chunks are separated by one CharWidth
// gap; X coordinates are line-local, with 0 at the content left edge.
func PackLines(chunks []Chunk, maxWidth float64, c Constants) []Line {
	var lines []Line
	cur := Line{Index: 0}
	x := 0.0

	for _, ch := range chunks {
		w := c.TextWidth(ch.Text)
		if len(cur.Chunks) > 0 && x+w > maxWidth {
			lines = append(lines, cur)
			cur = Line{Index: len(lines)}
			x = 0
		}
		cur.Chunks = append(cur.Chunks, PlacedChunk{Chunk: ch, X: x, Width: w})
		x += w + c.CharWidth
	}
	if len(cur.Chunks) > 0 {
		lines = append(lines, cur)
	}
	return lines
}
