package layout

import (
	"slices"

	"github.com/annotext/spanviz/pkg/annotation"
)

// connectionIndex maps each entity ID to the IDs of its incident
// relations, in relation declaration order. A self-relation appears once
// in its entity's list.
type connectionIndex map[string][]string

func indexConnections(relations []annotation.Relation) connectionIndex {
	idx := make(connectionIndex, len(relations))
	for _, r := range relations {
		idx[r.Source] = append(idx[r.Source], r.ID)
		if !r.IsSelf() {
			idx[r.Target] = append(idx[r.Target], r.ID)
		}
	}
	return idx
}

// anchorOffset returns the horizontal offset from the box center at which
// the given relation attaches to the given entity. With n incident
// relations the anchors spread evenly across the middle portion of the
// box, keeping endpoints visually separable; a sole relation attaches
// dead center.
func (ci connectionIndex) anchorOffset(entityID, relationID string, boxWidth float64) float64 {
	list := ci[entityID]
	n := len(list)
	if n <= 1 {
		return 0
	}
	i := slices.Index(list, relationID)
	if i < 0 {
		return 0
	}
	return (float64(i)/float64(n-1) - 0.5) * spreadFactor * boxWidth
}
