package positioning

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
)

// hiddenTextColor blanks a filtered-out point's label without disturbing the
// series' point order.
const hiddenTextColor = "rgba(0,0,0,0)"

// FilterFields mirrors the filter bar verbatim: bounds arrive as raw strings
// and are only interpreted at compile time.
type FilterFields struct {
	YearMin, YearMax string
	SizeMin, SizeMax string
	Search           string

	Domestic, International bool

	AINone, AIExperimental, AIProduction, AICore bool

	OwnIndependent, OwnSubsidiary, OwnGroup bool
}

// DefaultFilter returns the all-pass state the filter bar starts in.
func DefaultFilter() FilterFields {
	return FilterFields{
		Domestic: true, International: true,
		AINone: true, AIExperimental: true, AIProduction: true, AICore: true,
		OwnIndependent: true, OwnSubsidiary: true, OwnGroup: true,
	}
}

// MatchAll reports whether the fields are at their all-pass defaults.
func (f FilterFields) MatchAll() bool {
	f.YearMin = strings.TrimSpace(f.YearMin)
	f.YearMax = strings.TrimSpace(f.YearMax)
	f.SizeMin = strings.TrimSpace(f.SizeMin)
	f.SizeMax = strings.TrimSpace(f.SizeMax)
	f.Search = strings.TrimSpace(f.Search)
	return f == DefaultFilter()
}

// Predicate is a compiled filter. The zero value matches nothing useful;
// always construct via Compile.
type Predicate struct {
	fields           FilterFields
	yearMin, yearMax *int
	sizeMin, sizeMax *float64
	search           string
}

func parseIntBound(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func parseSizeBound(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// Compile interprets the raw fields once. An empty or unparseable bound
// disables that bound rather than failing the whole filter.
func (f FilterFields) Compile() Predicate {
	return Predicate{
		fields:  f,
		yearMin: parseIntBound(f.YearMin),
		yearMax: parseIntBound(f.YearMax),
		sizeMin: parseSizeBound(f.SizeMin),
		sizeMax: parseSizeBound(f.SizeMax),
		search:  strings.ToLower(strings.TrimSpace(f.Search)),
	}
}

// Matches evaluates the conjunction of every clause against one entity. The
// numeric size clause reads the attribute the active view plots, resolving
// a missing value via filterSize; year bounds only apply when the entity
// carries a founding year.
func (p Predicate) Matches(e *dataset.Entity, sizeAttr SizeAttr) bool {
	if e.Region == dataset.RegionDomestic && !p.fields.Domestic {
		return false
	}
	if e.Region == dataset.RegionInternational && !p.fields.International {
		return false
	}

	if e.Founded != nil {
		if p.yearMin != nil && *e.Founded < *p.yearMin {
			return false
		}
		if p.yearMax != nil && *e.Founded > *p.yearMax {
			return false
		}
	}

	size := filterSize(sizeAttr, e)
	if p.sizeMin != nil && size < *p.sizeMin {
		return false
	}
	if p.sizeMax != nil && size > *p.sizeMax {
		return false
	}

	if p.search != "" && !strings.Contains(e.SearchHaystack(), p.search) {
		return false
	}

	switch e.AILevel() {
	case "none":
		if !p.fields.AINone {
			return false
		}
	case "experimental":
		if !p.fields.AIExperimental {
			return false
		}
	case "production":
		if !p.fields.AIProduction {
			return false
		}
	case "core":
		if !p.fields.AICore {
			return false
		}
	}

	switch e.Ownership() {
	case "independent":
		if !p.fields.OwnIndependent {
			return false
		}
	case "subsidiary":
		if !p.fields.OwnSubsidiary {
			return false
		}
	case "group_company":
		if !p.fields.OwnGroup {
			return false
		}
	}

	return true
}

// filterSize resolves the active view's size attribute for the numeric
// clause. A missing founding size compares as the sentinel minimum; a
// missing current size compares as zero, so a min bound excludes it. The
// embedded page's filter script resolves the same way.
func filterSize(a SizeAttr, e *dataset.Entity) float64 {
	if v := a.Of(e); v != nil {
		return *v
	}
	if a == SizeFounded {
		return dataset.SentinelSize
	}
	return 0
}

// seriesSnapshot holds a series' pristine per-point arrays, captured once so
// filters always rebuild from the originals instead of compounding.
type seriesSnapshot struct {
	opacity   []float64
	textColor []string
	hover     []string
	x, y      []*float64
}

// Engine applies a compiled predicate to every series of a build result,
// mutating the series in place and mirroring each change to a Surface.
// Applying the all-pass predicate restores the snapshots byte for byte.
type Engine struct {
	store *dataset.Store
	res   *Result
	snap  map[int]seriesSnapshot

	markerOrder []int // sorted PointMaps keys
	lineOrder   []int // sorted LineGroups keys
}

// NewEngine snapshots the result's mutable fields and returns an engine
// bound to it.
func NewEngine(store *dataset.Store, res *Result) *Engine {
	eng := &Engine{store: store, res: res, snap: map[int]seriesSnapshot{}}
	for idx := range res.PointMaps {
		eng.markerOrder = append(eng.markerOrder, idx)
	}
	for idx := range res.LineGroups {
		eng.lineOrder = append(eng.lineOrder, idx)
	}
	sort.Ints(eng.markerOrder)
	sort.Ints(eng.lineOrder)
	for _, idx := range append(append([]int{}, eng.markerOrder...), eng.lineOrder...) {
		s := &res.Series[idx]
		eng.snap[idx] = seriesSnapshot{
			opacity:   append([]float64(nil), s.Opacity...),
			textColor: append([]string(nil), s.TextColor...),
			hover:     append([]string(nil), s.HoverText...),
			x:         append([]*float64(nil), s.X...),
			y:         append([]*float64(nil), s.Y...),
		}
	}
	return eng
}

// Apply evaluates the predicate against every entity under the given size
// attribute, rewrites the series and reports the match count. A nil surface
// is allowed (headless use); a surface error is logged and that series
// skipped rather than aborting the pass.
func (eng *Engine) Apply(pred Predicate, sizeAttr SizeAttr, surface Surface) int {
	matches := make([]bool, eng.store.Len())
	count := 0
	for id := 0; id < eng.store.Len(); id++ {
		if pred.Matches(eng.store.ByID(id), sizeAttr) {
			matches[id] = true
			count++
		}
	}
	eng.applyMatches(matches, surface)
	return count
}

func (eng *Engine) applyMatches(matches []bool, surface Surface) {
	for _, idx := range eng.markerOrder {
		s := &eng.res.Series[idx]
		snap := eng.snap[idx]
		pointMap := eng.res.PointMaps[idx]

		for pi, members := range pointMap {
			if len(members) == 0 {
				panic(fmt.Sprintf("positioning: series %d point %d has empty provenance", idx, pi))
			}
			anyMatch := false
			for _, id := range members {
				if matches[id] {
					anyMatch = true
					break
				}
			}
			if !anyMatch {
				s.Opacity[pi] = 0
				s.TextColor[pi] = hiddenTextColor
				s.HoverText[pi] = ""
				continue
			}
			s.Opacity[pi] = snap.opacity[pi]
			s.TextColor[pi] = snap.textColor[pi]
			if len(members) > 1 {
				parts := strings.Split(snap.hover[pi], HoverSeparator)
				kept := parts[:0]
				for mi, id := range members {
					if matches[id] && mi < len(parts) {
						kept = append(kept, parts[mi])
					}
				}
				s.HoverText[pi] = strings.Join(kept, HoverSeparator)
			} else {
				s.HoverText[pi] = snap.hover[pi]
			}
		}
		eng.restyle(surface, idx, StylePatch{
			Opacity:   s.Opacity,
			TextColor: s.TextColor,
			HoverText: s.HoverText,
		})
	}

	for _, idx := range eng.lineOrder {
		s := &eng.res.Series[idx]
		snap := eng.snap[idx]
		ids := eng.res.LineGroups[idx]
		copy(s.X, snap.x)
		copy(s.Y, snap.y)
		for si, id := range ids {
			if !matches[id] {
				s.X[si*3], s.X[si*3+1] = nil, nil
				s.Y[si*3], s.Y[si*3+1] = nil, nil
			}
		}
		eng.restyle(surface, idx, StylePatch{X: s.X, Y: s.Y})
	}
}

// Reset restores every snapshot and mirrors the restoration to the surface.
func (eng *Engine) Reset(surface Surface) {
	for _, idx := range eng.markerOrder {
		s := &eng.res.Series[idx]
		snap := eng.snap[idx]
		copy(s.Opacity, snap.opacity)
		copy(s.TextColor, snap.textColor)
		copy(s.HoverText, snap.hover)
		eng.restyle(surface, idx, StylePatch{
			Opacity:   s.Opacity,
			TextColor: s.TextColor,
			HoverText: s.HoverText,
		})
	}
	for _, idx := range eng.lineOrder {
		s := &eng.res.Series[idx]
		snap := eng.snap[idx]
		copy(s.X, snap.x)
		copy(s.Y, snap.y)
		eng.restyle(surface, idx, StylePatch{X: s.X, Y: s.Y})
	}
}

func (eng *Engine) restyle(surface Surface, idx int, patch StylePatch) {
	if surface == nil {
		return
	}
	if err := surface.Restyle(idx, patch); err != nil {
		dataset.Warnf("restyle series %d skipped: %v", idx, err)
	}
}
