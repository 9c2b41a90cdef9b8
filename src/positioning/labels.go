package positioning

import "sort"

// Anchor is one of the eight text-anchor directions a point label can take.
type Anchor string

const (
	AnchorMiddleRight  Anchor = "middle right"
	AnchorTopRight     Anchor = "top right"
	AnchorBottomRight  Anchor = "bottom right"
	AnchorTopCenter    Anchor = "top center"
	AnchorTopLeft      Anchor = "top left"
	AnchorMiddleLeft   Anchor = "middle left"
	AnchorBottomCenter Anchor = "bottom center"
	AnchorBottomLeft   Anchor = "bottom left"
)

// anchorAlternatives is the fixed priority list tried when two labels
// collide. The default (middle right) is not in the list; a reassigned label
// moves away from it.
var anchorAlternatives = []Anchor{
	AnchorTopRight, AnchorBottomRight, AnchorTopCenter,
	AnchorTopLeft, AnchorMiddleLeft, AnchorBottomCenter, AnchorBottomLeft,
}

// Collision thresholds. Empirically tuned for the map's axis ranges
// (x in [0,1], y in people on a log axis); tunable, not load-bearing.
const (
	labelCollideDX = 0.10
	labelCollideDY = 150.0
	// Vertical distance is discounted because the y axis is logarithmic and
	// visually compressed.
	labelVerticalWeight = 0.5
)

// ResolveAnchors assigns a text anchor to every point, nudging the second
// point of each close pair to the first alternative anchor that differs from
// the first point's current anchor and has not been tried on it before.
// Greedy and order-dependent, deterministic for a fixed input order. Two
// exhausted neighbours may still share an anchor; that is a degraded layout,
// not an error.
func ResolveAnchors(points []MergedPoint) []Anchor {
	anchors := make([]Anchor, len(points))
	for i := range anchors {
		anchors[i] = AnchorMiddleRight
	}

	type pair struct {
		d      float64
		i, j   int
		dx, dy float64
	}
	pairs := make([]pair, 0, len(points)*(len(points)-1)/2)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			dx := abs(points[i].X - points[j].X)
			dy := abs(points[i].Y - points[j].Y)
			pairs = append(pairs, pair{dx + dy*labelVerticalWeight, i, j, dx, dy})
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		pa, pb := pairs[a], pairs[b]
		if pa.d != pb.d {
			return pa.d < pb.d
		}
		if pa.i != pb.i {
			return pa.i < pb.i
		}
		return pa.j < pb.j
	})

	used := map[int]map[Anchor]bool{}
	for _, p := range pairs {
		if p.dx >= labelCollideDX || p.dy >= labelCollideDY {
			continue
		}
		for _, alt := range anchorAlternatives {
			if alt == anchors[p.i] || used[p.j][alt] {
				continue
			}
			anchors[p.j] = alt
			if used[p.j] == nil {
				used[p.j] = map[Anchor]bool{}
			}
			used[p.j][alt] = true
			break
		}
	}
	return anchors
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
