package main

import (
	"math"
	"testing"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func testResult() (*dataset.Store, *positioning.Result) {
	store := dataset.NewStore([]dataset.Entity{
		{Name: "A", Region: dataset.RegionDomestic, Founded: ip(1985),
			SizeFounded: fp(30), SizeCurrent: fp(100), OriginalScore: fp(0.8)},
		{Name: "B", Region: dataset.RegionInternational, Founded: ip(2010),
			SizeCurrent: fp(400), OriginalScore: fp(0.3)},
	})
	return store, positioning.Build(store)
}

func TestAxisMapper_LogTransform(t *testing.T) {
	_, res := testResult()
	cfg := res.Views[positioning.ViewCurrent]
	m := newAxisMapper(cfg, true, 1200, 760)
	if !m.logY {
		t.Fatal("current view should map log y")
	}
	if got := m.yValue(100); math.Abs(got-2) > 1e-9 {
		t.Fatalf("yValue(100) = %v, want 2", got)
	}
	// Non-positive values clamp to the axis floor instead of producing -Inf.
	if got := m.yValue(0); got != m.yMin {
		t.Fatalf("yValue(0) = %v, want axis floor %v", got, m.yMin)
	}
}

func TestAxisMapper_LinearToggleUsesLinearRange(t *testing.T) {
	_, res := testResult()
	cfg := res.Views[positioning.ViewCurrent]
	m := newAxisMapper(cfg, false, 1200, 760)
	if m.logY {
		t.Fatal("toggled-off mapper should be linear")
	}
	if m.yMin != cfg.YLinearRange[0] || m.yMax != cfg.YLinearRange[1] {
		t.Fatalf("linear range = [%v, %v], want %v", m.yMin, m.yMax, cfg.YLinearRange)
	}
}

func TestAxisMapper_PixelsInsideGutters(t *testing.T) {
	_, res := testResult()
	cfg := res.Views[positioning.ViewCurrent]
	m := newAxisMapper(cfg, true, 1200, 760)
	px, py := m.toPixel(0.8, 100)
	if px <= padLeft || px >= 1200-padRight {
		t.Fatalf("px = %v outside plot area", px)
	}
	if py <= padTop || py >= 760-padBottom {
		t.Fatalf("py = %v outside plot area", py)
	}
	// Larger y draws higher on screen.
	_, pyBig := m.toPixel(0.8, 1000)
	if pyBig >= py {
		t.Fatalf("y=1000 should sit above y=100: %v vs %v", pyBig, py)
	}
}

func TestRenderMap_ReturnsVisiblePoints(t *testing.T) {
	store, res := testResult()
	cfg := res.Views[positioning.ViewOrder[0]]
	img, pts := renderMap(res, cfg, true, 1200, 760)
	if img == nil {
		t.Fatal("no image rendered")
	}
	if len(pts) == 0 {
		t.Fatal("no hoverable points collected")
	}
	covered := map[int]bool{}
	for _, p := range pts {
		for _, id := range res.PointMaps[p.seriesIdx][p.pointIdx] {
			covered[id] = true
		}
		if p.hover == "" {
			t.Fatalf("point %d/%d has empty hover", p.seriesIdx, p.pointIdx)
		}
	}
	for id := 0; id < store.Len(); id++ {
		if !covered[id] {
			t.Fatalf("entity %d missing from rendered points", id)
		}
	}
}

func TestRenderMap_FilteredPointsDropFromHover(t *testing.T) {
	store, res := testResult()
	eng := positioning.NewEngine(store, res)
	f := positioning.DefaultFilter()
	f.International = false
	eng.Apply(f.Compile(), positioning.SizeFounded, nil)

	cfg := res.Views[positioning.ViewOrder[0]]
	_, pts := renderMap(res, cfg, true, 1200, 760)
	for _, p := range pts {
		for _, id := range res.PointMaps[p.seriesIdx][p.pointIdx] {
			if store.ByID(id).Region == dataset.RegionInternational {
				t.Fatalf("filtered-out entity %d still hoverable", id)
			}
		}
	}
}

func TestFormatTick(t *testing.T) {
	cases := []struct {
		format string
		v      float64
		want   string
	}{
		{".0%", 0.25, "25%"},
		{".1f", 0.5, "0.5"},
		{"d", 1985, "1985"},
		{",d", 1000, "1,000"},
		{",d", 12, "12"},
		{",d", 1234567, "1,234,567"},
	}
	for _, c := range cases {
		if got := formatTick(c.format, c.v); got != c.want {
			t.Fatalf("formatTick(%q, %v) = %q, want %q", c.format, c.v, got, c.want)
		}
	}
}

func TestScaleColor(t *testing.T) {
	stops := []positioning.ColorStop{
		{0, "#E74C3C"}, {0.5, "#F39C12"}, {1, "#27AE60"},
	}
	cases := []struct {
		v       float64
		r, g, b uint8
	}{
		{-0.5, 0xE7, 0x4C, 0x3C}, // clamps below the first stop
		{0, 0xE7, 0x4C, 0x3C},
		{0.25, 0xED, 0x74, 0x27}, // halfway between the first two stops
		{0.5, 0xF3, 0x9C, 0x12},
		{1, 0x27, 0xAE, 0x60},
		{2, 0x27, 0xAE, 0x60}, // clamps above the last stop
	}
	for _, c := range cases {
		got := scaleColor(stops, c.v)
		if got.R != c.r || got.G != c.g || got.B != c.b {
			t.Fatalf("scaleColor(%v) = #%02X%02X%02X, want #%02X%02X%02X",
				c.v, got.R, got.G, got.B, c.r, c.g, c.b)
		}
	}
}

func TestMarkerSeries_ColorValuesDriveDotColor(t *testing.T) {
	x0, x1 := 0.1, 0.2
	y0, y1 := 100.0, 200.0
	s := positioning.Series{
		Name:       "Public revenue data",
		Color:      "#95A5A6",
		X:          []*float64{&x0, &x1},
		Y:          []*float64{&y0, &y1},
		Opacity:    []float64{1, 1},
		MarkerSize: []float64{10, 10},
		ColorValues: []float64{
			0, 1,
		},
		ColorScale: []positioning.ColorStop{
			{0, "#E74C3C"}, {0.5, "#F39C12"}, {1, "#27AE60"},
		},
	}
	_, res := testResult()
	m := newAxisMapper(res.Views[positioning.ViewCurrent], true, 1200, 760)
	cs := markerSeries(&s, m).(chart.ContinuousSeries)

	low := cs.Style.DotColorProvider(nil, nil, 0, 0, 0)
	high := cs.Style.DotColorProvider(nil, nil, 1, 0, 0)
	if low.R != 0xE7 || low.G != 0x4C || low.B != 0x3C {
		t.Fatalf("low-ratio dot = %+v, want the scale's red end", low)
	}
	if high.R != 0x27 || high.G != 0xAE || high.B != 0x60 {
		t.Fatalf("high-ratio dot = %+v, want the scale's green end", high)
	}

	// Without color values the series color stands.
	s.ColorValues = nil
	cs = markerSeries(&s, m).(chart.ContinuousSeries)
	flat := cs.Style.DotColorProvider(nil, nil, 0, 0, 0)
	if flat.R != 0x95 || flat.G != 0xA5 || flat.B != 0xA6 {
		t.Fatalf("flat dot = %+v, want the series color", flat)
	}
}

func TestParseColor(t *testing.T) {
	c := parseColor("#3498DB")
	if c.R != 0x34 || c.G != 0x98 || c.B != 0xDB || c.A != 255 {
		t.Fatalf("hex parse = %+v", c)
	}
	c = parseColor("rgba(52,152,219,0.6)")
	if c.R != 52 || c.G != 152 || c.B != 219 || c.A != uint8(0.6*255) {
		t.Fatalf("rgba parse = %+v", c)
	}
}

func TestNearbyHovers_OrderedAndCapped(t *testing.T) {
	pts := []renderedPoint{
		{px: 100, py: 100, hover: "far"},
		{px: 10, py: 10, hover: "nearest"},
		{px: 20, py: 10, hover: "second"},
		{px: 500, py: 500, hover: "outside"},
		{px: 12, py: 14, hover: "third"},
		{px: 30, py: 30, hover: "fourth"},
		{px: 40, py: 40, hover: "fifth"},
	}
	got := nearbyHovers(pts, 10, 10, 50)
	if len(got) != 4 {
		t.Fatalf("hits = %d, want cap of 4", len(got))
	}
	if got[0] != "nearest" {
		t.Fatalf("nearest first, got %v", got)
	}
	for _, h := range got {
		if h == "outside" {
			t.Fatal("point beyond the threshold included")
		}
	}
}
