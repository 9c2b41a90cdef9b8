// Package positioning is the point-aggregation, label-placement and
// filter-synchronization engine behind the studio positioning map. It turns
// the immutable entity store into nine switchable views of merged scatter
// points, keeps a provenance map from every rendered point back to the
// entity ids it represents, and re-derives per-point visual state from a
// live filter predicate without ever rebuilding geometry.
package positioning

import (
	"strings"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
)

// Selector extracts one plot coordinate from an entity. ok is false when the
// record has no value for the attribute.
type Selector func(e *dataset.Entity) (v float64, ok bool)

// MergedPoint is one visual point aggregating every entity that landed on
// the identical (x, y) pair under a view's selectors.
type MergedPoint struct {
	X, Y float64
	// Label is the newline-joined member names.
	Label string
	// Members holds the stable entity ids, in bucket-entry order. Never empty.
	Members []int
}

// LabelSeparator joins member names in a merged point's display label.
const LabelSeparator = "\n"

type xyKey struct{ x, y float64 }

// Group buckets entities by exact (x, y) equality under the given selectors.
// Numeric equality, not proximity: two entities 0.001 apart stay separate.
// A missing x falls back to 0, a missing y to the sentinel minimum size, so
// every input entity appears in the output. Bucket order is first-encounter
// order; a singleton bucket is indistinguishable from an unmerged point.
// Pure function: neither the entities nor any package state is touched.
func Group(entities []*dataset.Entity, xSel, ySel Selector) []MergedPoint {
	buckets := map[xyKey]int{}
	points := make([]MergedPoint, 0, len(entities))
	names := make([][]string, 0, len(entities))

	for _, e := range entities {
		x, ok := xSel(e)
		if !ok {
			x = 0
		}
		y, ok := ySel(e)
		if !ok {
			y = dataset.SentinelSize
		}
		k := xyKey{x, y}
		if idx, seen := buckets[k]; seen {
			points[idx].Members = append(points[idx].Members, e.ID)
			names[idx] = append(names[idx], e.Name)
			continue
		}
		buckets[k] = len(points)
		points = append(points, MergedPoint{X: x, Y: y, Members: []int{e.ID}})
		names = append(names, []string{e.Name})
	}
	for i := range points {
		points[i].Label = strings.Join(names[i], LabelSeparator)
	}
	return points
}
