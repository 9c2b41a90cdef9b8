package positioning

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
)

// ViewKey names one of the nine fixed views. The set is closed at build
// time; switching to any other key is a programmer error.
type ViewKey string

const (
	ViewFounded       ViewKey = "founded"
	ViewCurrent       ViewKey = "current"
	ViewGrowth        ViewKey = "growth"
	ViewBusinessModel ViewKey = "business_model"
	ViewAIAdoption    ViewKey = "ai_adoption"
	ViewRevenue       ViewKey = "revenue"
	ViewOwnership     ViewKey = "ownership"
	ViewPlatform      ViewKey = "platform"
	ViewProfitability ViewKey = "profitability"
)

// ViewOrder is the button order; the first entry is the default active view.
var ViewOrder = [9]ViewKey{
	ViewFounded, ViewCurrent, ViewGrowth, ViewBusinessModel, ViewAIAdoption,
	ViewRevenue, ViewOwnership, ViewPlatform, ViewProfitability,
}

// AxisConfig is one axis of a view layout.
type AxisConfig struct {
	Title      string
	Range      [2]float64
	DTick      float64 // 0 = automatic
	TickFormat string
	Log        bool
}

// Annotation is a fixed callout drawn with a view.
type Annotation struct {
	X, Y      float64
	Paper     bool // coordinates relative to the paper instead of the data
	Text      string
	ShowArrow bool
	AX, AY    int
}

// ViewConfig is the closed per-view configuration: coordinate mapping, axis
// setup, title and the size attribute numeric filters read under this view.
type ViewConfig struct {
	Key          ViewKey
	Title        string
	Button       string
	X, Y         AxisConfig
	YLinearRange [2]float64 // alternate range for the log/linear toggle
	SizeAttr     SizeAttr
	Annotations  []Annotation
}

// MarkerLine is the outline drawn around markers.
type MarkerLine struct {
	Width float64
	Color string
}

// ColorStop is one stop of a continuous color scale.
type ColorStop struct {
	Pos   float64
	Color string
}

// Series is one renderable trace: merged points sharing a visual encoding.
// Point order is fixed for the series' lifetime; the filter engine addresses
// points by index. Only the visual fields (Opacity, TextColor, HoverText,
// X/Y for line traces) are ever mutated after construction.
type Series struct {
	Name        string
	ViewKey     ViewKey
	CategoryKey string // retained category key for categorical series
	Mode        string // "markers+text", "markers" or "lines"
	Color       string
	Symbol      string
	ShowLegend  bool
	Visible     bool

	X, Y []*float64 // nil entries break trajectory lines

	Labels     []string
	Anchors    []Anchor
	TextSize   int
	TextColor  []string  // per point
	HoverText  []string  // per point
	Opacity    []float64 // per-point marker opacity
	MarkerSize []float64 // per point
	MarkerLine MarkerLine

	// Continuous color encoding: per-point values mapped onto ColorScale.
	ColorValues   []float64
	ColorScale    []ColorStop
	ColorBarTitle string

	// Trajectory line traces only.
	IsLine      bool
	LineWidth   float64
	LineOpacity float64
}

// Points returns the number of points in the series.
func (s *Series) Points() int { return len(s.X) }

// Result is the finished output of the view builder: every series for every
// view, the per-series point→entity-id provenance, the per-view visibility
// table and the trajectory-line bookkeeping. Structurally immutable after
// Build returns.
type Result struct {
	Views  map[ViewKey]ViewConfig
	Series []Series
	// PointMaps maps a marker-series index to its provenance: one ordered
	// entity-id list per merged point.
	PointMaps map[int][][]int
	// LineGroups maps a trajectory-line series index to the entity ids its
	// segments represent, in segment order.
	LineGroups map[int][]int
	// Visibility lists the series indices visible under each view.
	Visibility map[ViewKey][]int
	// TrajectoryLines are the line-series indices (independently toggleable).
	TrajectoryLines []int
}

// Config returns the configuration for a view key, panicking on an unknown
// key: the key set is fixed at build time and not user-suppliable.
func (r *Result) Config(key ViewKey) ViewConfig {
	cfg, ok := r.Views[key]
	if !ok {
		panic(fmt.Sprintf("positioning: unknown view key %q", key))
	}
	return cfg
}

// Palette and layout constants carried over from the map design.
const (
	colorDomestic      = "#3498DB"
	colorInternational = "#E74C3C"
	colorNoData        = "#BDBDBD"
	colorFallback      = "#95A5A6"

	markerSize      = 10.0
	markerSizeSmall = 7.0
	labelTextSize   = 9

	// Growth trajectory gradient.
	gradientSteps = 8
)

var (
	xRangeScore  = [2]float64{-0.05, 1.05}
	yRangeLog    = [2]float64{0.5, 4.0}
	yRangeLinear = [2]float64{-50, 3000}

	aiPalette = map[string]string{
		"none":         "#BDBDBD",
		"experimental": "#FFC107",
		"production":   "#4CAF50",
		"core":         "#FFD700",
	}
	ownershipPalette = map[string]string{
		"independent":   "#27AE60",
		"subsidiary":    "#2980B9",
		"group_company": "#8E44AD",
	}
	businessModelPalette = map[string]string{
		"commission": "#E74C3C",
		"mixed":      "#F39C12",
		"original":   "#27AE60",
		"ip_holding": "#2980B9",
	}
	platformPalette = map[string]string{
		"Netflix":     "#E50914",
		"Crunchyroll": "#F47521",
		"Amazon":      "#00A8E1",
		"Disney+":     "#113CCF",
		"Bilibili":    "#00A1D6",
		"Other":       "#95A5A6",
	}
)

// Coordinate selectors.

func selOriginality(e *dataset.Entity) (float64, bool) {
	if e.OriginalScore != nil {
		return *e.OriginalScore, true
	}
	return 0, false
}

// selOriginalityFounded falls back to the current score when no founding
// score is recorded, matching the trajectory's degenerate "no x movement".
func selOriginalityFounded(e *dataset.Entity) (float64, bool) {
	if e.OriginalScoreFounded != nil {
		return *e.OriginalScoreFounded, true
	}
	return selOriginality(e)
}

func selIPOwnership(e *dataset.Entity) (float64, bool) {
	if e.IPOwnershipScore != nil {
		return *e.IPOwnershipScore, true
	}
	return 0, false
}

func selOperatingMargin(e *dataset.Entity) (float64, bool) {
	if e.OperatingMargin != nil {
		return *e.OperatingMargin, true
	}
	return 0, false
}

func selRevenue(e *dataset.Entity) (float64, bool) {
	if e.RevenueBillionYen != nil {
		return *e.RevenueBillionYen, true
	}
	return 0, false
}

// defaultFoundedYear places entities without a founding year on the
// profitability view's year axis.
const defaultFoundedYear = 2000

func selFoundedYear(e *dataset.Entity) (float64, bool) {
	if e.Founded != nil {
		return float64(*e.Founded), true
	}
	return defaultFoundedYear, true
}

// withFallback substitutes a view-appropriate sentinel when the selector has
// no value, so the entity stays plottable instead of being dropped.
func withFallback(sel Selector, v float64) Selector {
	return func(e *dataset.Entity) (float64, bool) {
		if got, ok := sel(e); ok {
			return got, true
		}
		return v, true
	}
}

// sizeScale maps a magnitude attribute into a bounded visual marker size:
// base + factor*log10(value), clamped to [min, max], fallback when absent.
type sizeScale struct {
	attr                        SizeAttr
	min, max, base, factor, def float64
}

func (s sizeScale) of(e *dataset.Entity) float64 {
	v := s.attr.Of(e)
	if v == nil || *v <= 0 {
		return s.def
	}
	size := s.base + s.factor*math.Log10(*v)
	if size < s.min {
		return s.min
	}
	if size > s.max {
		return s.max
	}
	return size
}

type scatterOpts struct {
	name       string
	view       ViewKey
	category   string
	color      string
	symbol     string
	xSel, ySel Selector
	sizeAttr   SizeAttr
	opacity    float64 // 0 means 1.0
	markerSize float64 // 0 means the default
	markerLine *MarkerLine
	textColor  string // "" means the series color
	textSize   int    // 0 means the default
	hideLabels bool
	labelFn    func(MergedPoint) string
	sizeScale  *sizeScale
	hideLegend bool

	// continuous color encoding
	colorValue    func(*dataset.Entity) float64
	colorScale    []ColorStop
	colorBarTitle string
}

type builder struct {
	store *dataset.Store
	res   *Result
}

// Build constructs every series of every view from the entity store and
// returns the finished structure. No package-level state is accumulated;
// repeated calls over the same store yield identical results.
func Build(store *dataset.Store) *Result {
	defer dataset.TimeTrack(time.Now(), "view build")
	b := &builder{
		store: store,
		res: &Result{
			Views:      viewConfigs(),
			PointMaps:  map[int][][]int{},
			LineGroups: map[int][]int{},
			Visibility: map[ViewKey][]int{},
		},
	}

	b.buildFoundedAndCurrent()
	b.buildGrowth()
	b.buildBusinessModel()
	b.buildAIAdoption()
	b.buildRevenue()
	b.buildOwnership()
	b.buildPlatform()
	b.buildProfitability()

	// Initial visibility: the first view's series only.
	for _, idx := range b.res.Visibility[ViewOrder[0]] {
		b.res.Series[idx].Visible = true
	}
	dataset.Debugf("built %d series across %d views", len(b.res.Series), len(b.res.Views))
	return b.res
}

// where returns the entities matching pred, in store order.
func (b *builder) where(pred func(*dataset.Entity) bool) []*dataset.Entity {
	all := b.store.All()
	out := make([]*dataset.Entity, 0, len(all))
	for i := range all {
		if pred(&all[i]) {
			out = append(out, &all[i])
		}
	}
	return out
}

func isDomestic(e *dataset.Entity) bool { return e.Region == dataset.RegionDomestic }

// addMarkerSeries groups the entities under the option's selectors, resolves
// label anchors, renders hover text and appends one marker series together
// with its provenance map. Returns the new series index.
func (b *builder) addMarkerSeries(entities []*dataset.Entity, o scatterOpts) int {
	pts := Group(entities, o.xSel, o.ySel)

	var anchors []Anchor
	if o.hideLabels {
		anchors = make([]Anchor, len(pts))
		for i := range anchors {
			anchors[i] = AnchorMiddleRight
		}
	} else {
		anchors = ResolveAnchors(pts)
	}

	opacity := o.opacity
	if opacity == 0 {
		opacity = 1.0
	}
	size := o.markerSize
	if size == 0 {
		size = markerSize
	}
	textColor := o.textColor
	if textColor == "" {
		textColor = o.color
	}
	textSize := o.textSize
	if textSize == 0 {
		textSize = labelTextSize
	}
	line := MarkerLine{Width: 1, Color: "white"}
	if o.markerLine != nil {
		line = *o.markerLine
	}
	mode := "markers+text"
	if o.hideLabels {
		mode = "markers"
	}

	s := Series{
		Name:          o.name,
		ViewKey:       o.view,
		CategoryKey:   o.category,
		Mode:          mode,
		Color:         o.color,
		Symbol:        o.symbol,
		ShowLegend:    !o.hideLegend,
		TextSize:      textSize,
		MarkerLine:    line,
		ColorScale:    o.colorScale,
		ColorBarTitle: o.colorBarTitle,
	}
	if s.Symbol == "" {
		s.Symbol = "circle"
	}

	pointMap := make([][]int, len(pts))
	for i, p := range pts {
		x, y := p.X, p.Y
		s.X = append(s.X, &x)
		s.Y = append(s.Y, &y)
		label := ""
		if !o.hideLabels {
			if o.labelFn != nil {
				label = o.labelFn(p)
			} else {
				label = p.Label
			}
		}
		s.Labels = append(s.Labels, label)
		s.Anchors = append(s.Anchors, anchors[i])
		s.TextColor = append(s.TextColor, textColor)
		s.HoverText = append(s.HoverText, mergedHover(b.store, p, o.sizeAttr))
		s.Opacity = append(s.Opacity, opacity)

		first := b.store.ByID(p.Members[0])
		if o.sizeScale != nil {
			s.MarkerSize = append(s.MarkerSize, o.sizeScale.of(first))
		} else {
			s.MarkerSize = append(s.MarkerSize, size)
		}
		if o.colorValue != nil {
			s.ColorValues = append(s.ColorValues, o.colorValue(first))
		}
		pointMap[i] = p.Members
	}

	idx := len(b.res.Series)
	b.res.Series = append(b.res.Series, s)
	b.res.PointMaps[idx] = pointMap
	b.res.Visibility[o.view] = append(b.res.Visibility[o.view], idx)
	return idx
}

// addNoDataSeries routes a view's excluded entities into a distinguished
// grey series so every view still covers the whole store.
func (b *builder) addNoDataSeries(entities []*dataset.Entity, view ViewKey, xSel, ySel Selector, sizeAttr SizeAttr) {
	if len(entities) == 0 {
		return
	}
	b.addMarkerSeries(entities, scatterOpts{
		name:      "No data",
		view:      view,
		category:  "no_data",
		color:     colorNoData,
		xSel:      xSel,
		ySel:      ySel,
		sizeAttr:  sizeAttr,
		opacity:   0.5,
		textColor: "#999999",
		textSize:  8,
	})
}

func (b *builder) buildFoundedAndCurrent() {
	domestic := b.where(isDomestic)
	international := b.where(func(e *dataset.Entity) bool { return !isDomestic(e) })

	for _, v := range []struct {
		key  ViewKey
		attr SizeAttr
	}{{ViewFounded, SizeFounded}, {ViewCurrent, SizeCurrent}} {
		b.addMarkerSeries(domestic, scatterOpts{
			name: "Domestic studios", view: v.key, color: colorDomestic,
			xSel: selOriginality, ySel: v.attr.Selector(), sizeAttr: v.attr,
		})
		b.addMarkerSeries(international, scatterOpts{
			name: "International studios", view: v.key, color: colorInternational,
			xSel: selOriginality, ySel: v.attr.Selector(), sizeAttr: v.attr,
		})
	}
}

// foundedYearLabel renders a growth start marker's label: the founding year
// of each merged member, one per line.
func (b *builder) foundedYearLabel(p MergedPoint) string {
	parts := make([]string, len(p.Members))
	for i, id := range p.Members {
		e := b.store.ByID(id)
		if e.Founded != nil {
			parts[i] = fmt.Sprintf("(%d)", *e.Founded)
		} else {
			parts[i] = "(?)"
		}
	}
	return strings.Join(parts, LabelSeparator)
}

func (b *builder) buildGrowth() {
	hasGrowth := func(e *dataset.Entity) bool {
		return e.SizeFounded != nil && e.SizeCurrent != nil && *e.SizeFounded != *e.SizeCurrent
	}
	growthDom := b.where(func(e *dataset.Entity) bool { return hasGrowth(e) && isDomestic(e) })
	growthIntl := b.where(func(e *dataset.Entity) bool { return hasGrowth(e) && !isDomestic(e) })

	// Start markers at the founding-time coordinates, faded.
	b.addMarkerSeries(growthDom, scatterOpts{
		name: "Domestic (at founding)", view: ViewGrowth, color: colorDomestic,
		xSel: selOriginalityFounded, ySel: SizeFounded.Selector(), sizeAttr: SizeFounded,
		opacity: 0.4, markerSize: markerSizeSmall,
		textColor: "rgba(52,152,219,0.6)", labelFn: b.foundedYearLabel,
	})
	b.addMarkerSeries(growthIntl, scatterOpts{
		name: "International (at founding)", view: ViewGrowth, color: colorInternational,
		xSel: selOriginalityFounded, ySel: SizeFounded.Selector(), sizeAttr: SizeFounded,
		opacity: 0.4, markerSize: markerSizeSmall,
		textColor: "rgba(231,76,60,0.6)", labelFn: b.foundedYearLabel,
	})

	// End markers at the current coordinates.
	b.addMarkerSeries(growthDom, scatterOpts{
		name: "Domestic (now)", view: ViewGrowth, color: colorDomestic,
		xSel: selOriginality, ySel: SizeCurrent.Selector(), sizeAttr: SizeCurrent,
	})
	b.addMarkerSeries(growthIntl, scatterOpts{
		name: "International (now)", view: ViewGrowth, color: colorInternational,
		xSel: selOriginality, ySel: SizeCurrent.Selector(), sizeAttr: SizeCurrent,
	})

	b.addGrowthLines(growthDom, colorDomestic, "Trajectory (domestic)")
	b.addGrowthLines(growthIntl, colorInternational, "Trajectory (international)")

	b.addNoDataSeries(
		b.where(func(e *dataset.Entity) bool { return !hasGrowth(e) }),
		ViewGrowth, selOriginality, withFallback(SizeCurrent.Selector(), dataset.SentinelSize), SizeCurrent,
	)
}

// addGrowthLines emits the gradient trajectory: gradientSteps short line
// traces interpolating founding→current coordinates, opacity and width
// increasing toward the endpoint. Each trace holds one x0,x1,gap triplet per
// entity and is tagged with the full entity-id list for filtering.
func (b *builder) addGrowthLines(entities []*dataset.Entity, color, name string) {
	if len(entities) == 0 {
		return
	}
	ids := make([]int, len(entities))
	for i, e := range entities {
		ids[i] = e.ID
	}
	for step := 0; step < gradientSteps; step++ {
		t0 := float64(step) / gradientSteps
		t1 := float64(step+1) / gradientSteps
		frac := float64(step+1) / gradientSteps
		s := Series{
			Name:        name,
			ViewKey:     ViewGrowth,
			Mode:        "lines",
			Color:       color,
			IsLine:      true,
			LineOpacity: 0.08 + 0.77*frac*frac,
			LineWidth:   2.5 + 1.5*(float64(step)/(gradientSteps-1)),
		}
		for _, e := range entities {
			xStart, _ := selOriginalityFounded(e)
			xEnd, _ := selOriginality(e)
			yStart := dataset.SentinelSize
			if e.SizeFounded != nil {
				yStart = *e.SizeFounded
			}
			yEnd := *e.SizeCurrent
			x0 := xStart + (xEnd-xStart)*t0
			x1 := xStart + (xEnd-xStart)*t1
			y0 := yStart + (yEnd-yStart)*t0
			y1 := yStart + (yEnd-yStart)*t1
			s.X = append(s.X, &x0, &x1, nil)
			s.Y = append(s.Y, &y0, &y1, nil)
		}
		idx := len(b.res.Series)
		b.res.Series = append(b.res.Series, s)
		b.res.LineGroups[idx] = ids
		b.res.Visibility[ViewGrowth] = append(b.res.Visibility[ViewGrowth], idx)
		b.res.TrajectoryLines = append(b.res.TrajectoryLines, idx)
	}
}

// addCategoricalSeries splits the entities by category key (first-encounter
// order) and emits one series per group, retaining the key on the series so
// nothing ever needs to reverse-derive it from a legend label.
func (b *builder) addCategoricalSeries(entities []*dataset.Entity, keyFn func(*dataset.Entity) string,
	palette, labels map[string]string, base scatterOpts) {
	var order []string
	groups := map[string][]*dataset.Entity{}
	for _, e := range entities {
		k := keyFn(e)
		if k == "" {
			k = "unknown"
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}
	for _, k := range order {
		o := base
		o.category = k
		o.name = labelFor(labels, k)
		o.color = palette[k]
		if o.color == "" {
			o.color = colorFallback
		}
		b.addMarkerSeries(groups[k], o)
	}
}

func (b *builder) buildBusinessModel() {
	scored := b.where(func(e *dataset.Entity) bool { return e.IPOwnershipScore != nil })
	b.addCategoricalSeries(scored,
		func(e *dataset.Entity) string { return e.BusinessModel },
		businessModelPalette, businessModelLabels,
		scatterOpts{
			view: ViewBusinessModel,
			xSel: selOriginality, ySel: selIPOwnership, sizeAttr: SizeCurrent,
			sizeScale: &sizeScale{attr: SizeCurrent, min: 6, max: 30, base: 6, factor: 8, def: 8},
		})
	b.addNoDataSeries(
		b.where(func(e *dataset.Entity) bool { return e.IPOwnershipScore == nil }),
		ViewBusinessModel, selOriginality, withFallback(selIPOwnership, 0), SizeCurrent,
	)
}

func (b *builder) buildAIAdoption() {
	regions := []struct {
		name   string
		symbol string
		pred   func(*dataset.Entity) bool
	}{
		{"Domestic", "circle", isDomestic},
		{"International", "diamond", func(e *dataset.Entity) bool { return !isDomestic(e) }},
	}
	levels := []string{"none", "experimental", "production", "core"}
	for _, r := range regions {
		for _, lvl := range levels {
			subset := b.where(func(e *dataset.Entity) bool { return r.pred(e) && e.AILevel() == lvl })
			if len(subset) == 0 {
				continue
			}
			b.addMarkerSeries(subset, scatterOpts{
				name:     r.name + " - " + labelFor(aiLevelLabels, lvl),
				view:     ViewAIAdoption,
				category: lvl,
				color:    aiPalette[lvl],
				symbol:   r.symbol,
				xSel:     selOriginality, ySel: SizeCurrent.Selector(), sizeAttr: SizeCurrent,
			})
		}
	}
}

func (b *builder) buildRevenue() {
	withRevenue := b.where(func(e *dataset.Entity) bool { return e.RevenueBillionYen != nil })
	if len(withRevenue) > 0 {
		b.addMarkerSeries(withRevenue, scatterOpts{
			name: "Public revenue data", view: ViewRevenue,
			color:     colorFallback,
			textColor: "#444444",
			xSel:      withFallback(selOperatingMargin, 0), ySel: selRevenue, sizeAttr: SizeCurrent,
			sizeScale: &sizeScale{attr: SizeCurrent, min: 8, max: 35, base: 8, factor: 10, def: 10},
			colorValue: func(e *dataset.Entity) float64 {
				if e.LicensingRatio != nil {
					return *e.LicensingRatio
				}
				return 0
			},
			colorScale: []ColorStop{
				{0, "#E74C3C"}, {0.5, "#F39C12"}, {1, "#27AE60"},
			},
			colorBarTitle: "Licensing ratio",
		})
	}
	b.addNoDataSeries(
		b.where(func(e *dataset.Entity) bool { return e.RevenueBillionYen == nil }),
		ViewRevenue, withFallback(selOperatingMargin, 0), withFallback(selRevenue, dataset.SentinelSize), SizeCurrent,
	)
}

func (b *builder) buildOwnership() {
	b.addCategoricalSeries(b.where(func(*dataset.Entity) bool { return true }),
		func(e *dataset.Entity) string { return e.OwnershipType },
		ownershipPalette, ownershipLabels,
		scatterOpts{
			view: ViewOwnership,
			xSel: selOriginality, ySel: SizeCurrent.Selector(), sizeAttr: SizeCurrent,
		})
}

func (b *builder) buildPlatform() {
	b.addCategoricalSeries(b.where(func(*dataset.Entity) bool { return true }),
		func(e *dataset.Entity) string { return e.PlatformBucket() },
		platformPalette, nil,
		scatterOpts{
			view: ViewPlatform,
			xSel: selOriginality, ySel: SizeCurrent.Selector(), sizeAttr: SizeCurrent,
		})
}

func (b *builder) buildProfitability() {
	prof := b.where(func(e *dataset.Entity) bool { return e.YearsToProfitability != nil })
	nonProf := b.where(func(e *dataset.Entity) bool { return e.YearsToProfitability == nil })

	if len(nonProf) > 0 {
		b.addMarkerSeries(nonProf, scatterOpts{
			name: "No profitability data", view: ViewProfitability,
			category: "no_data", color: colorNoData, opacity: 0.5,
			textColor: "#999999", textSize: 8,
			xSel: selFoundedYear, ySel: withFallback(SizeCurrent.Selector(), dataset.SentinelSize), sizeAttr: SizeCurrent,
		})
	}
	if len(prof) > 0 {
		b.addMarkerSeries(prof, scatterOpts{
			name: "Profitability data", view: ViewProfitability,
			category: "profitable", color: "#4CAF50", symbol: "star",
			markerSize: 14, markerLine: &MarkerLine{Width: 2, Color: "#2E7D32"},
			textColor: "#2E7D32",
			xSel:      selFoundedYear, ySel: withFallback(SizeCurrent.Selector(), dataset.SentinelSize), sizeAttr: SizeCurrent,
			labelFn: func(p MergedPoint) string {
				parts := make([]string, len(p.Members))
				for i, id := range p.Members {
					e := b.store.ByID(id)
					if e.YearsToProfitability != nil {
						parts[i] = fmt.Sprintf("%s (%dy)", e.Name, *e.YearsToProfitability)
					} else {
						parts[i] = e.Name
					}
				}
				return strings.Join(parts, LabelSeparator)
			},
		})
	}
}

// viewConfigs returns the nine closed view configurations.
func viewConfigs() map[ViewKey]ViewConfig {
	scoreX := AxisConfig{
		Title: "← Commission          Original →",
		Range: xRangeScore, DTick: 0.1, TickFormat: ".1f",
	}
	staffLogY := AxisConfig{
		Title: "Staff size (people)",
		Range: yRangeLog, TickFormat: ",d", Log: true,
	}

	cfgs := map[ViewKey]ViewConfig{
		ViewFounded: {
			Key: ViewFounded, Button: "1. Founding",
			Title: "Founding-time map — every studio at its founding size",
			X:     scoreX, Y: staffLogY, YLinearRange: yRangeLinear,
			SizeAttr: SizeFounded,
		},
		ViewCurrent: {
			Key: ViewCurrent, Button: "2. Current",
			Title: "Current map — every studio at its current size",
			X:     scoreX, Y: staffLogY, YLinearRange: yRangeLinear,
			SizeAttr: SizeCurrent,
		},
		ViewGrowth: {
			Key: ViewGrowth, Button: "3. Growth",
			Title: "Growth trajectories — founding → now",
			X:     scoreX, Y: staffLogY, YLinearRange: yRangeLinear,
			SizeAttr: SizeCurrent,
		},
		ViewBusinessModel: {
			Key: ViewBusinessModel, Button: "4. Business model",
			Title: "Business model — originality × IP ownership",
			X:     scoreX,
			Y: AxisConfig{
				Title: "IP ownership score",
				Range: [2]float64{-0.05, 1.05}, DTick: 0.1, TickFormat: ".1f",
			},
			YLinearRange: [2]float64{-0.05, 1.05},
			SizeAttr:     SizeCurrent,
		},
		ViewAIAdoption: {
			Key: ViewAIAdoption, Button: "5. AI adoption",
			Title: "AI adoption — originality × staff size",
			X:     scoreX, Y: staffLogY, YLinearRange: yRangeLinear,
			SizeAttr: SizeCurrent,
		},
		ViewRevenue: {
			Key: ViewRevenue, Button: "6. Revenue",
			Title: "Revenue and scale — operating margin × revenue (public data only)",
			X: AxisConfig{
				Title: "Operating margin",
				Range: [2]float64{-0.05, 0.40}, DTick: 0.05, TickFormat: ".0%",
			},
			Y: AxisConfig{
				Title: "Revenue (¥ billion)",
				Range: [2]float64{1.0, 3.5}, TickFormat: ",d", Log: true,
			},
			YLinearRange: [2]float64{0, 3500},
			SizeAttr:     SizeCurrent,
			Annotations: []Annotation{{
				X: 0.5, Y: 1.07, Paper: true,
				Text: "* Public filings only. Marker size: staff count, color: licensing ratio",
			}},
		},
		ViewOwnership: {
			Key: ViewOwnership, Button: "7. Ownership",
			Title: "Ownership structure — originality × staff size",
			X:     scoreX, Y: staffLogY, YLinearRange: yRangeLinear,
			SizeAttr: SizeCurrent,
			Annotations: []Annotation{{
				X: 0.55, Y: 51, Text: "2024: Toho acquires SARU",
				ShowArrow: true, AX: 40, AY: -30,
			}},
		},
		ViewPlatform: {
			Key: ViewPlatform, Button: "8. Platforms",
			Title: "Streaming platform map — originality × staff size",
			X:     scoreX, Y: staffLogY, YLinearRange: yRangeLinear,
			SizeAttr: SizeCurrent,
		},
		ViewProfitability: {
			Key: ViewProfitability, Button: "9. Profitability",
			Title: "Founding year and profitability — year × current size",
			X: AxisConfig{
				Title: "Founding year",
				Range: [2]float64{1940, 2025}, DTick: 10, TickFormat: "d",
			},
			Y: AxisConfig{
				Title: "Current staff size (people)",
				Range: yRangeLog, TickFormat: ",d", Log: true,
			},
			YLinearRange: yRangeLinear,
			SizeAttr:     SizeCurrent,
		},
	}
	return cfgs
}
