package layout

// applyMetrics computes each line's vertical budget and offset, and
// returns the total content height (margins excluded).
//
// A line's spacing starts from BaseLineSpacing. Lines carrying entity
// boxes add one EntityLayerSpacing per layer plus the box margin; lines
// anchoring relation endpoints add one RelationSlot per incident
// relation. Line Y offsets are the running prefix sum, so a crowded line
// pushes everything after it further down. LayerCount and RelationCount
// must be filled in before calling.
func applyMetrics(lines []Line, c Constants) float64 {
	y := 0.0
	for i := range lines {
		ln := &lines[i]
		ln.Y = y

		s := c.BaseLineSpacing
		if ln.LayerCount > 0 {
			s += float64(ln.LayerCount)*c.EntityLayerSpacing + boxMargin
		}
		if ln.RelationCount > 0 {
			s += float64(ln.RelationCount) * c.RelationSlot
		}
		ln.Spacing = s
		y += s
	}
	return y
}
